package product

import (
	"encoding/json"
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
	Name        string `validate:"required,min=3"`
	Description string `validate:"required,min=20"`
	TenantID    string `validate:"required"`
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
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		TenantID:    r.FormValue("tenantId"),
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

	categoryID, err := validate.ObjectID(r.FormValue("categoryId"))
	if err != nil {
		utils.RespondWithError(w, apperror.Validation("categoryId must be a valid object id"))
		return
	}

	var pc map[string]models.ProductPriceOption
	if err := json.Unmarshal([]byte(r.FormValue("priceConfiguration")), &pc); err != nil {
		utils.RespondWithError(w, apperror.Validation("priceConfiguration must be valid JSON"))
		return
	}
	if err := validate.ProductPriceConfiguration(pc); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	var attrs []models.ProductAttribute
	if err := json.Unmarshal([]byte(r.FormValue("attributes")), &attrs); err != nil {
		utils.RespondWithError(w, apperror.Validation("attributes must be valid JSON"))
		return
	}
	if err := validate.ProductAttributes(attrs); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, apperror.Validation("product image is required"))
		return
	}
	defer file.Close()

	// The image must be committed before the document references it.
	imageName := uuid.NewString()
	if err := h.storage.Upload(r.Context(), imageName, file); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	product, err := h.store.Create(r.Context(), &models.Product{
		Name:               payload.Name,
		Description:        payload.Description,
		Image:              imageName,
		PriceConfiguration: pc,
		Attributes:         attrs,
		TenantID:           payload.TenantID,
		CategoryID:         categoryID,
		IsPublish:          r.FormValue("isPublish") == "true",
	})
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("product created: %s", product.ID.Hex())
	h.events.Emit(mq.ProductCreate, product.ID.Hex(), product.TenantID)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"id": product.ID})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	// Existence first, authorization second; a cross-tenant manager gets
	// Forbidden, never NotFound-shaped leakage.
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

	upd, err := h.parseUpdate(r)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	// New image: upload the replacement, then drop the old object, then
	// write the reference. An upload failure aborts the whole mutation.
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

	product, err := h.store.Update(r.Context(), id, upd)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("product updated: %s", product.ID.Hex())
	h.events.Emit(mq.ProductUpdate, product.ID.Hex(), product.TenantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": product.ID})
}

func (h *Handler) parseUpdate(r *http.Request) (Update, error) {
	upd := Update{}

	if v, ok := utils.FormField(r, "name"); ok {
		if len(v) < 3 {
			return upd, apperror.Validation("name must be at least 3 characters")
		}
		upd.Name = &v
	}
	if v, ok := utils.FormField(r, "description"); ok {
		if len(v) < 20 {
			return upd, apperror.Validation("description must be at least 20 characters")
		}
		upd.Description = &v
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
	if v, ok := utils.FormField(r, "priceConfiguration"); ok {
		var pc map[string]models.ProductPriceOption
		if err := json.Unmarshal([]byte(v), &pc); err != nil {
			return upd, apperror.Validation("priceConfiguration must be valid JSON")
		}
		if err := validate.ProductPriceConfiguration(pc); err != nil {
			return upd, err
		}
		upd.PriceConfiguration = pc
	}
	if v, ok := utils.FormField(r, "attributes"); ok {
		var attrs []models.ProductAttribute
		if err := json.Unmarshal([]byte(v), &attrs); err != nil {
			return upd, apperror.Validation("attributes must be valid JSON")
		}
		if err := validate.ProductAttributes(attrs); err != nil {
			return upd, err
		}
		upd.Attributes = attrs
	}

	return upd, nil
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validate.ObjectID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	product, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	product.Image = h.storage.ObjectURI(product.Image)
	utils.RespondWithJSON(w, http.StatusOK, product)
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

	// The stored image goes first; the document is only removed once its
	// object is gone.
	if err := h.storage.Delete(r.Context(), existing.Image); err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	log.Printf("product deleted: %s", id.Hex())
	h.events.Emit(mq.ProductDelete, id.Hex(), existing.TenantID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": id})
}
