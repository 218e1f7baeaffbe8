package marketplace

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/domain"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/entities"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/get_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/get_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/get_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/list_businesses"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/queries/list_products"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/create_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/create_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/delete_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/delete_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/delete_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/register_user"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_business"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_product"
	"github.com/light-bringer/dealmarket-service/internal/app/marketplace/usecases/update_user"
	"github.com/light-bringer/dealmarket-service/internal/pkg/schema"
)

// Partial update bodies are checked against the input variants with the
// fields that cannot change after creation removed.
var (
	userPatchSchema     = schema.MustDeriveInput(entities.UserEntity, "UserPatch")
	businessPatchSchema = schema.MustDeriveInput(entities.BusinessEntity, "BusinessPatch",
		schema.Exclude(domain.FieldOwnerID))
	productPatchSchema = schema.MustDeriveInput(entities.ProductEntity, "ProductPatch",
		schema.Exclude(domain.FieldMainCategory, domain.FieldPercentageDiscount, domain.FieldBusinessID))
)

// Handler serves the marketplace HTTP API.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	registerUser   *register_user.Interactor
	updateUser     *update_user.Interactor
	deleteUser     *delete_user.Interactor
	createBusiness *create_business.Interactor
	updateBusiness *update_business.Interactor
	deleteBusiness *delete_business.Interactor
	createProduct  *create_product.Interactor
	updateProduct  *update_product.Interactor
	deleteProduct  *delete_product.Interactor

	// Queries
	getUser        *get_user.Query
	getBusiness    *get_business.Query
	listBusinesses *list_businesses.Query
	getProduct     *get_product.Query
	listProducts   *list_products.Query
}

// NewHandler creates a new marketplace HTTP handler.
func NewHandler(
	registerUser *register_user.Interactor,
	updateUser *update_user.Interactor,
	deleteUser *delete_user.Interactor,
	createBusiness *create_business.Interactor,
	updateBusiness *update_business.Interactor,
	deleteBusiness *delete_business.Interactor,
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	getUser *get_user.Query,
	getBusiness *get_business.Query,
	listBusinesses *list_businesses.Query,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
) *Handler {
	return &Handler{
		registerUser:   registerUser,
		updateUser:     updateUser,
		deleteUser:     deleteUser,
		createBusiness: createBusiness,
		updateBusiness: updateBusiness,
		deleteBusiness: deleteBusiness,
		createProduct:  createProduct,
		updateProduct:  updateProduct,
		deleteProduct:  deleteProduct,
		getUser:        getUser,
		getBusiness:    getBusiness,
		listBusinesses: listBusinesses,
		getProduct:     getProduct,
		listProducts:   listProducts,
	}
}

// Register mounts the routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/users", h.CreateUser)
	g.GET("/users/:id", h.GetUser)
	g.PATCH("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.GET("/users/:id/businesses", h.ListUserBusinesses)

	g.POST("/businesses", h.CreateBusiness)
	g.GET("/businesses/:id", h.GetBusiness)
	g.PATCH("/businesses/:id", h.UpdateBusiness)
	g.DELETE("/businesses/:id", h.DeleteBusiness)
	g.GET("/businesses/:id/products", h.ListBusinessProducts)

	g.POST("/products", h.CreateProduct)
	g.GET("/products", h.ListProducts)
	g.GET("/products/:id", h.GetProduct)
	g.PATCH("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)

	g.GET("/schemas", h.ListSchemas)
	g.GET("/schemas/:name", h.GetSchema)
}

// CreateUser registers a user --> POST /users
func (h *Handler) CreateUser(c echo.Context) error {
	var in UserIn
	if _, err := decodeBody(c, entities.UserInSchema, false, &in); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	id, err := h.registerUser.Execute(ctx, in.toRequest())
	if err != nil {
		return respondError(c, err)
	}
	zerolog.Ctx(ctx).Info().Int64("user_id", id).Msg("user registered")

	return h.respondUser(c, http.StatusCreated, id)
}

// GetUser --> GET /users/:id
func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondUser(c, http.StatusOK, id)
}

// UpdateUser --> PATCH /users/:id
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var patch UserPatch
	if _, err := decodeBody(c, userPatchSchema, true, &patch); err != nil {
		return respondError(c, err)
	}
	if err := h.updateUser.Execute(c.Request().Context(), patch.toRequest(id)); err != nil {
		return respondError(c, err)
	}

	return h.respondUser(c, http.StatusOK, id)
}

// DeleteUser --> DELETE /users/:id
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.deleteUser.Execute(c.Request().Context(), &delete_user.Request{UserID: id}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUserBusinesses --> GET /users/:id/businesses
func (h *Handler) ListUserBusinesses(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	req := &list_businesses.Request{OwnerID: id}
	if err := bindPage(c, &req.Limit, &req.Offset); err != nil {
		return respondError(c, err)
	}

	list, err := h.listBusinesses.Execute(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, businessPage(list))
}

// CreateBusiness --> POST /businesses
func (h *Handler) CreateBusiness(c echo.Context) error {
	var in BusinessIn
	if _, err := decodeBody(c, entities.BusinessInSchema, false, &in); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	id, err := h.createBusiness.Execute(ctx, in.toRequest())
	if err != nil {
		return respondError(c, err)
	}
	zerolog.Ctx(ctx).Info().Int64("business_id", id).Int64("owner_id", in.OwnerID).Msg("business created")

	return h.respondBusiness(c, http.StatusCreated, id)
}

// GetBusiness --> GET /businesses/:id
func (h *Handler) GetBusiness(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondBusiness(c, http.StatusOK, id)
}

// UpdateBusiness --> PATCH /businesses/:id
func (h *Handler) UpdateBusiness(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var patch BusinessPatch
	payload, err := decodeBody(c, businessPatchSchema, true, &patch)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.updateBusiness.Execute(c.Request().Context(), patch.toRequest(id, payload)); err != nil {
		return respondError(c, err)
	}

	return h.respondBusiness(c, http.StatusOK, id)
}

// DeleteBusiness --> DELETE /businesses/:id
func (h *Handler) DeleteBusiness(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.deleteBusiness.Execute(c.Request().Context(), &delete_business.Request{BusinessID: id}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBusinessProducts --> GET /businesses/:id/products
func (h *Handler) ListBusinessProducts(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondProducts(c, &list_products.Request{BusinessID: id})
}

// CreateProduct --> POST /products
func (h *Handler) CreateProduct(c echo.Context) error {
	var in ProductIn
	if _, err := decodeBody(c, entities.ProductInSchema, false, &in); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	id, err := h.createProduct.Execute(ctx, in.toRequest())
	if err != nil {
		return respondError(c, err)
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", id).Int64("business_id", in.BusinessID).Msg("product created")

	return h.respondProduct(c, http.StatusCreated, id)
}

// ListProducts --> GET /products?business_id=&category=&main_category=&name_prefix=&min_discount=&active=
func (h *Handler) ListProducts(c echo.Context) error {
	req := &list_products.Request{
		Category:     c.QueryParam("category"),
		MainCategory: c.QueryParam("main_category"),
		NamePrefix:   c.QueryParam("name_prefix"),
	}
	var minDiscount int64
	err := echo.QueryParamsBinder(c).
		Int64("business_id", &req.BusinessID).
		Int64("min_discount", &minDiscount).
		Bool("active", &req.ActiveOnly).
		BindError()
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", errInvalidQuery, err))
	}
	if c.QueryParam("min_discount") != "" {
		req.MinDiscount = &minDiscount
	}
	return h.respondProducts(c, req)
}

// GetProduct --> GET /products/:id
func (h *Handler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondProduct(c, http.StatusOK, id)
}

// UpdateProduct --> PATCH /products/:id
func (h *Handler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}

	var patch ProductPatch
	if _, err := decodeBody(c, productPatchSchema, true, &patch); err != nil {
		return respondError(c, err)
	}
	if err := h.updateProduct.Execute(c.Request().Context(), patch.toRequest(id)); err != nil {
		return respondError(c, err)
	}

	return h.respondProduct(c, http.StatusOK, id)
}

// DeleteProduct --> DELETE /products/:id
func (h *Handler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.deleteProduct.Execute(c.Request().Context(), &delete_product.Request{ProductID: id}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSchemas --> GET /schemas
func (h *Handler) ListSchemas(c echo.Context) error {
	variants := entities.Variants()
	out := make([]schema.Summary, len(variants))
	for i, s := range variants {
		out[i] = s.Summary()
	}
	return c.JSON(http.StatusOK, out)
}

// GetSchema returns one variant as a protobuf message descriptor --> GET /schemas/:name
func (h *Handler) GetSchema(c echo.Context) error {
	s, err := entities.Variant(c.Param("name"))
	if err != nil {
		return respondError(c, err)
	}

	body, err := protojson.Marshal(s.Descriptor())
	if err != nil {
		return respondError(c, fmt.Errorf("failed to encode descriptor: %w", err))
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (h *Handler) respondUser(c echo.Context, code int, id int64) error {
	dto, err := h.getUser.Execute(c.Request().Context(), &get_user.Request{UserID: id})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(code, userOutFromDTO(dto))
}

func (h *Handler) respondBusiness(c echo.Context, code int, id int64) error {
	dto, err := h.getBusiness.Execute(c.Request().Context(), &get_business.Request{BusinessID: id})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(code, businessFromDTO(dto))
}

func (h *Handler) respondProduct(c echo.Context, code int, id int64) error {
	dto, err := h.getProduct.Execute(c.Request().Context(), &get_product.Request{ProductID: id})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(code, productFromDTO(dto))
}

func (h *Handler) respondProducts(c echo.Context, req *list_products.Request) error {
	if err := bindPage(c, &req.Limit, &req.Offset); err != nil {
		return respondError(c, err)
	}

	list, err := h.listProducts.Execute(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, productPage(list))
}

func bindPage(c echo.Context, limit, offset *int64) error {
	err := echo.QueryParamsBinder(c).
		Int64("limit", limit).
		Int64("offset", offset).
		BindError()
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidQuery, err)
	}
	return nil
}
