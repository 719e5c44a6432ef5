package category

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/integrity"
	"github.com/tech-manthan/mernspace-catalog-service/models"
	"github.com/tech-manthan/mernspace-catalog-service/mq"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
	"github.com/tech-manthan/mernspace-catalog-service/validate"
)

type CreatePayload struct {
	Name               string                        `json:"name" validate:"required,min=3"`
	PriceConfiguration map[string]models.PriceOption `json:"priceConfiguration" validate:"required,min=1"`
	Attributes         []models.Attribute            `json:"attributes" validate:"required,min=1"`
}

type UpdatePayload struct {
	Name               *string                       `json:"name" validate:"omitempty,min=3"`
	PriceConfiguration map[string]models.PriceOption `json:"priceConfiguration"`
	Attributes         []models.Attribute            `json:"attributes"`
}

type Handler struct {
	store  *Store
	guard  *integrity.Guard
	events *mq.Emitter
}

func NewHandler(store *Store, guard *integrity.Guard, events *mq.Emitter) *Handler {
	return &Handler{store: store, guard: guard, events: events}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, apperror.Validation("invalid JSON body"))
		return
	}

	if err := validate.Struct(payload); err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if err := validate.CategoryPriceConfiguration(payload.PriceConfiguration); err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if err := validate.CategoryAttributes(payload.Attributes); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	category, err := h.store.Create(r.Context(), payload.Name, payload.PriceConfiguration, payload.Attributes)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("category created: %s", category.ID.Hex())
	h.events.Emit(mq.CategoryCreate, category.ID.Hex(), "")
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"id": category.ID})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	var payload UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, apperror.Validation("invalid JSON body"))
		return
	}

	if err := validate.Struct(payload); err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if payload.PriceConfiguration != nil {
		if err := validate.CategoryPriceConfiguration(payload.PriceConfiguration); err != nil {
			utils.RespondWithError(w, err)
			return
		}
	}
	if payload.Attributes != nil {
		if err := validate.CategoryAttributes(payload.Attributes); err != nil {
			utils.RespondWithError(w, err)
			return
		}
	}

	category, err := h.store.Update(r.Context(), id, Update{
		Name:               payload.Name,
		PriceConfiguration: payload.PriceConfiguration,
		Attributes:         payload.Attributes,
	})
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("category updated: %s", category.ID.Hex())
	h.events.Emit(mq.CategoryUpdate, category.ID.Hex(), "")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": category.ID})
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	category, err := h.store.Get(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, category)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query().Get("q")
	pq := utils.ParsePageQuery(r)

	result, err := h.store.Search(r.Context(), q, pq)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"data":        result.Docs,
		"total":       result.TotalDocs,
		"currentPage": result.Page,
		"perPage":     result.Limit,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	// Existence first, so a missing category reads as 404 rather than a
	// deletion conflict.
	if _, err := h.store.Get(r.Context(), id); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if err := h.guard.DeleteCategory(r.Context(), id); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("category deleted: %s", id.Hex())
	h.events.Emit(mq.CategoryDelete, id.Hex(), "")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": id})
}
