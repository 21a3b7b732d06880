package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/services"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	defaultProductLimit = 10

	msgProductsFetched     = "Products retrieved successfully"
	msgProductFetched      = "Product retrieved successfully"
	msgProductCreated      = "Product created successfully"
	msgProductUpdated      = "Product updated successfully"
	msgProductDeleted      = "Product deleted successfully"
	msgStockUpdated        = "Stock updated successfully"
	msgUnableToFetchItems  = "Unable to fetch products"
	msgUnableToSaveProduct = "Unable to save product"
	msgUploadFailed        = "Unable to upload image"
)

var errUploadsDisabled = errors.New(msgUploadsDisabled)

type stockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func queryInt64(ctx *gin.Context, key string) (*int64, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+key)
		return nil, false
	}
	return &v, true
}

func queryBool(ctx *gin.Context, key string) (*bool, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+key)
		return nil, false
	}
	return &v, true
}

// productQuery reads the shared listing filters from the query string.
func productQuery(ctx *gin.Context) (repository.ProductQuery, bool) {
	page, limit := utils.ParsePagination(ctx, defaultProductLimit)
	q := repository.ProductQuery{
		Search: ctx.Query("search"),
		SortBy: ctx.Query("sortBy"),
		Order:  ctx.Query("order"),
		Page:   page,
		Limit:  limit,
	}
	var ok bool
	if q.MinPrice, ok = queryInt64(ctx, "minPrice"); !ok {
		return q, false
	}
	if q.MaxPrice, ok = queryInt64(ctx, "maxPrice"); !ok {
		return q, false
	}
	return q, true
}

func (h *Handler) listProducts(ctx *gin.Context, q repository.ProductQuery) {
	products, total, err := h.Store.Catalog.ListProducts(q)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgUnableToFetchItems, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgProductsFetched, paginated(ctx, products, q.Page, q.Limit, total))
}

func (h *Handler) GetProducts(ctx *gin.Context) {
	q, ok := productQuery(ctx)
	if !ok {
		return
	}
	h.listProducts(ctx, q)
}

// FilterProducts adds category and flag filters to the product listing.
func (h *Handler) FilterProducts(ctx *gin.Context) {
	q, ok := productQuery(ctx)
	if !ok {
		return
	}
	if raw := ctx.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "invalid categoryId")
			return
		}
		q.CategoryID = uint(id)
	}
	if q.IsFavorite, ok = queryBool(ctx, "isFavorite"); !ok {
		return
	}
	if q.IsFlashSale, ok = queryBool(ctx, "isFlashSale"); !ok {
		return
	}
	h.listProducts(ctx, q)
}

func (h *Handler) GetFavoriteProducts(ctx *gin.Context) {
	q, ok := productQuery(ctx)
	if !ok {
		return
	}
	favorite := true
	q.IsFavorite = &favorite
	h.listProducts(ctx, q)
}

func (h *Handler) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	product, err := h.Catalog.Product(id)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to retrieve product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgProductFetched, product)
}

// GetProductOptions lists the sizes and temperatures a cart line may use.
func (h *Handler) GetProductOptions(ctx *gin.Context) {
	sizes, err := h.Store.Catalog.ListSizes()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch options", err)
		return
	}
	temperatures, err := h.Store.Catalog.ListTemperatures()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch options", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Options retrieved successfully", gin.H{
		"sizes":        sizes,
		"temperatures": temperatures,
	})
}

// uploadFormFile stores the multipart file under field, if one was sent,
// and returns its URL.
func (h *Handler) uploadFormFile(ctx *gin.Context, field, prefix string, ownerID uint) (string, error) {
	file, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if h.Storage == nil {
		return "", errUploadsDisabled
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := utils.ObjectKey(prefix, ownerID, file.Filename)
	return h.Storage.Upload(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
}

func (h *Handler) respondUploadError(ctx *gin.Context, err error) {
	if errors.Is(err, errUploadsDisabled) {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgUploadsDisabled)
		return
	}
	respondWithError(ctx, http.StatusInternalServerError, msgUploadFailed, err)
}

func (h *Handler) CreateProduct(ctx *gin.Context) {
	var input services.ProductInput
	if err := ctx.ShouldBind(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	image, err := h.uploadFormFile(ctx, "image", "products", 0)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	input.Image = image

	product, err := h.Catalog.CreateProduct(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToSaveProduct)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, msgProductCreated, product)
}

func (h *Handler) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input services.ProductInput
	if err := ctx.ShouldBind(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	image, err := h.uploadFormFile(ctx, "image", "products", id)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	input.Image = image

	product, err := h.Catalog.UpdateProduct(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToSaveProduct)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgProductUpdated, product)
}

func (h *Handler) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		respondWithServiceError(ctx, err, "Unable to delete product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgProductDeleted, nil)
}

func (h *Handler) UpdateProductStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input stockRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := h.Catalog.AdjustStock(id, *input.Stock)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to update stock")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgStockUpdated, product)
}
