// Copyright (C) 2021 Karl Lark
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package rest

import (
	"errors"
	"net/http"
	"github.com/gin-gonic/gin"

	"github.com/karllark/stcal/internal/align"
	"github.com/karllark/stcal/internal/wcs"
)

func Serve() {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",   getPing)
			v1.POST("/pixmap", postPixmap)
		}
	}
	r.Run() // listen and serve on 0.0.0.0:8080
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

type postPixmapArgs struct {
	Input  *wcs.Description `json:"input"`
	Output *wcs.Description `json:"output"`
	Shape  []int32          `json:"shape,omitempty"`
}

func postPixmap(c *gin.Context) {
	var args postPixmapArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}
	if args.Input==nil || args.Output==nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both input and output transforms are required" } )
		return
	}

	in, err:=args.Input.Transform()
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}
	out, err:=args.Output.Transform()
	if err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}

	pixmap, err:=align.CalcPixmap(in, out, args.Shape)
	if err!=nil {
		status:=http.StatusInternalServerError
		if errors.Is(err, align.ErrMissingExtent) { status=http.StatusBadRequest }
		c.JSON(status, gin.H{"error": err.Error() } )
		return
	}

	c.JSON(http.StatusOK, pixmap)
}
