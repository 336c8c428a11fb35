package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gabpaderog/maxicoffee-admin/internal/datasource"
	"github.com/gabpaderog/maxicoffee-admin/internal/query"
)

// registerEntityRoutes mounts the five CRUD operations of one data source
// under /<resource>. Every entity type shares this handler; only the data
// source differs.
func registerEntityRoutes[T any](rg *gin.RouterGroup, path string, ds *datasource.DataSource[T]) {
	rg.GET(path, listEntities(ds))
	rg.GET(path+"/:id", readEntity(ds))
	rg.POST(path, createEntity(ds))
	rg.PATCH(path+"/:id", updateEntity(ds))
	rg.DELETE(path+"/:id", deleteEntity(ds))
}

func listEntities[T any](ds *datasource.DataSource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, err := parseSpec(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		page, err := ds.List(c.Request.Context(), spec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": page})
	}
}

func readEntity[T any](ds *datasource.DataSource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		v, ok, err := ds.Read(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": v})
	}
}

func createEntity[T any](ds *datasource.DataSource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if fieldErrs := ds.Validate(v); !fieldErrs.Ok() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
			return
		}
		created, err := ds.Create(c.Request.Context(), v)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": created})
	}
}

func updateEntity[T any](ds *datasource.DataSource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		var patch map[string]any
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := ds.Update(c.Request.Context(), id, patch)
		if errors.Is(err, datasource.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}

func deleteEntity[T any](ds *datasource.DataSource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}
		if err := ds.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func pathID(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

// parseSpec decodes the view description the grid sends along with a list
// request: page/pageSize as plain params, filter and sort as JSON arrays.
func parseSpec(c *gin.Context) (query.Spec, error) {
	spec := query.Spec{
		Pagination: query.Pagination{Page: 0, PageSize: 10},
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return spec, errors.New("invalid page")
		}
		spec.Pagination.Page = page
	}
	if sizeStr := c.Query("pageSize"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 0 {
			return spec, errors.New("invalid pageSize")
		}
		spec.Pagination.PageSize = size
	}
	if filterStr := c.Query("filter"); filterStr != "" {
		if err := json.Unmarshal([]byte(filterStr), &spec.Filters); err != nil {
			return spec, errors.New("invalid filter")
		}
	}
	if sortStr := c.Query("sort"); sortStr != "" {
		if err := json.Unmarshal([]byte(sortStr), &spec.Sorts); err != nil {
			return spec, errors.New("invalid sort")
		}
	}
	return spec, nil
}
