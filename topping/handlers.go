package topping

import (
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-manthan/mernspace-catalog-service/access"
	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/catalog"
	"github.com/tech-manthan/mernspace-catalog-service/filestore"
	"github.com/tech-manthan/mernspace-catalog-service/models"
	"github.com/tech-manthan/mernspace-catalog-service/mq"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
	"github.com/tech-manthan/mernspace-catalog-service/validate"
)

const maxUploadSize = 10 << 20 // 10 MB

type createPayload struct {
	Name     string `validate:"required,min=3"`
	TenantID string `validate:"required"`
}

type Handler struct {
	store   *Store
	storage filestore.Storage
	events  *mq.Emitter
}

func NewHandler(store *Store, storage filestore.Storage, events *mq.Emitter) *Handler {
	return &Handler{store: store, storage: storage, events: events}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, apperror.Validation("unable to parse form: %v", err))
		return
	}

	payload := createPayload{
		Name:     r.FormValue("name"),
		TenantID: r.FormValue("tenantId"),
	}
	if err := validate.Struct(payload); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	identity, _ := access.IdentityFrom(r.Context())
	if err := access.CanMutate(identity.Role, identity.Tenant, payload.TenantID); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		utils.RespondWithError(w, apperror.Validation("price must be a non-negative number"))
		return
	}

	categoryID, err := validate.ObjectID(r.FormValue("categoryId"))
	if err != nil {
		utils.RespondWithError(w, apperror.Validation("categoryId must be a valid object id"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, apperror.Validation("topping image is required"))
		return
	}
	defer file.Close()

	imageName := uuid.NewString()
	if err := h.storage.Upload(r.Context(), imageName, file); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	topping, err := h.store.Create(r.Context(), &models.Topping{
		Name:       payload.Name,
		Image:      imageName,
		Price:      price,
		TenantID:   payload.TenantID,
		CategoryID: categoryID,
		IsPublish:  r.FormValue("isPublish") == "true",
	})
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("topping created: %s", topping.ID.Hex())
	h.events.Emit(mq.ToppingCreate, topping.ID.Hex(), topping.TenantID)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"id": topping.ID})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	existing, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	identity, _ := access.IdentityFrom(r.Context())
	if err := access.CanMutate(identity.Role, identity.Tenant, existing.TenantID); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, apperror.Validation("unable to parse form: %v", err))
		return
	}

	upd, err := parseUpdate(r)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if file, _, ferr := r.FormFile("image"); ferr == nil {
		defer file.Close()
		newName := uuid.NewString()
		if err := h.storage.Upload(r.Context(), newName, file); err != nil {
			utils.RespondWithError(w, err)
			return
		}
		if err := h.storage.Delete(r.Context(), existing.Image); err != nil {
			utils.RespondWithError(w, err)
			return
		}
		upd.Image = &newName
	}

	topping, err := h.store.Update(r.Context(), id, upd)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("topping updated: %s", topping.ID.Hex())
	h.events.Emit(mq.ToppingUpdate, topping.ID.Hex(), topping.TenantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": topping.ID})
}

func parseUpdate(r *http.Request) (Update, error) {
	upd := Update{}

	if v, ok := utils.FormField(r, "name"); ok {
		if len(v) < 3 {
			return upd, apperror.Validation("name must be at least 3 characters")
		}
		upd.Name = &v
	}
	if v, ok := utils.FormField(r, "price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return upd, apperror.Validation("price must be a non-negative number")
		}
		upd.Price = &price
	}
	if v, ok := utils.FormField(r, "tenantId"); ok {
		if v == "" {
			return upd, apperror.Validation("tenantId cannot be empty")
		}
		upd.TenantID = &v
	}
	if v, ok := utils.FormField(r, "categoryId"); ok {
		categoryID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return upd, apperror.Validation("categoryId must be a valid object id")
		}
		upd.CategoryID = &categoryID
	}
	if v, ok := utils.FormField(r, "isPublish"); ok {
		publish, err := strconv.ParseBool(v)
		if err != nil {
			return upd, apperror.Validation("isPublish must be a boolean")
		}
		upd.IsPublish = &publish
	}

	return upd, nil
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	topping, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	topping.Image = h.storage.ObjectURI(topping.Image)
	utils.RespondWithJSON(w, http.StatusOK, topping)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query().Get("q")
	pq := utils.ParsePageQuery(r)

	filters, err := catalog.ParseFilters(r)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	result, err := h.store.Search(r.Context(), q, filters, pq)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	for i := range result.Docs {
		result.Docs[i].Image = h.storage.ObjectURI(result.Docs[i].Image)
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

	existing, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	identity, _ := access.IdentityFrom(r.Context())
	if err := access.CanMutate(identity.Role, identity.Tenant, existing.TenantID); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if err := h.storage.Delete(r.Context(), existing.Image); err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("topping deleted: %s", id.Hex())
	h.events.Emit(mq.ToppingDelete, id.Hex(), existing.TenantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": id})
}
