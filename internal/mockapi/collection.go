package mockapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/academy-console/internal/models"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
	"github.com/noah-isme/academy-console/pkg/response"
)

// collection is one in-memory resource table. Enveloped collections answer
// `{"data": ...}`, the rest answer bare payloads — the mix mirrors the real
// backend and keeps the console's normalisation honest.
type collection[T models.Identifiable] struct {
	mu        sync.Mutex
	items     []T
	withID    func(T, string) T
	enveloped bool
}

func newCollection[T models.Identifiable](enveloped bool, withID func(T, string) T, seed ...T) *collection[T] {
	return &collection[T]{items: seed, withID: withID, enveloped: enveloped}
}

func (col *collection[T]) snapshot() []T {
	col.mu.Lock()
	defer col.mu.Unlock()
	items := make([]T, len(col.items))
	copy(items, col.items)
	return items
}

func (col *collection[T]) count() int {
	col.mu.Lock()
	defer col.mu.Unlock()
	return len(col.items)
}

func (col *collection[T]) respond(c *gin.Context, status int, data interface{}) {
	if col.enveloped {
		response.JSON(c, status, data)
		return
	}
	response.Bare(c, status, data)
}

func (col *collection[T]) list(c *gin.Context) {
	col.respond(c, http.StatusOK, col.snapshot())
}

func (col *collection[T]) get(c *gin.Context) {
	id := c.Param("id")
	col.mu.Lock()
	defer col.mu.Unlock()
	for _, item := range col.items {
		if item.GetID() == id {
			col.respond(c, http.StatusOK, item)
			return
		}
	}
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "resource not found"))
}

func (col *collection[T]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	item = col.withID(item, uuid.NewString())

	col.mu.Lock()
	col.items = append(col.items, item)
	col.mu.Unlock()

	col.respond(c, http.StatusCreated, item)
}

func (col *collection[T]) update(c *gin.Context) {
	id := c.Param("id")
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	item = col.withID(item, id)

	col.mu.Lock()
	defer col.mu.Unlock()
	for i := range col.items {
		if col.items[i].GetID() == id {
			col.items[i] = item
			col.respond(c, http.StatusOK, item)
			return
		}
	}
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "resource not found"))
}

func (col *collection[T]) remove(c *gin.Context) {
	id := c.Param("id")

	col.mu.Lock()
	defer col.mu.Unlock()
	for i := range col.items {
		if col.items[i].GetID() == id {
			col.items = append(col.items[:i], col.items[i+1:]...)
			response.NoContent(c)
			return
		}
	}
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "resource not found"))
}

func registerCRUD[T models.Identifiable](rg *gin.RouterGroup, path string, col *collection[T]) {
	rg.GET(path, col.list)
	rg.POST(path, col.create)
	rg.GET(path+"/:id", col.get)
	rg.PUT(path+"/:id", col.update)
	rg.DELETE(path+"/:id", col.remove)
}
