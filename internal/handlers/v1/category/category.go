package category

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/service"
)

type categoryService interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, name string, categoryType ledger.TransactionType) (*service.Category, error)
	GetCategory(ctx context.Context, userID, id uuid.UUID) (*service.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]service.Category, error)
	UpdateCategory(ctx context.Context, userID, id uuid.UUID, update service.CategoryUpdate) (*service.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
}

// Handler serves the /v1/category endpoints.
type Handler struct {
	Categories categoryService
}

func NewHandler(categories categoryService) *Handler {
	return &Handler{Categories: categories}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create a category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}",
		Summary:     "Get a category",
		Tags:        []string{"Categories"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/v1/category/{id}",
		Summary:     "Update a category",
		Description: "Renames a category or switches it between income and expense. Filed transactions are not changed.",
		Tags:        []string{"Categories"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete a category",
		Description:   "Deletes the category. Transactions filed under it keep existing without a category.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.deleteCategory)
}

type CreateCategoryInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body   struct {
		Name string `json:"name" minLength:"1" maxLength:"100" doc:"Category name"`
		Type string `json:"type" enum:"income,expense" doc:"Kind of transaction the category files"`
	}
}

type CategoryOutput struct {
	Status int
	Body   httpio.Category
}

type ListCategoriesInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []httpio.Category `json:"categories"`
	}
}

type CategoryPathInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Category UUID"`
}

type UpdateCategoryInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Category UUID"`
	Body   UpdateCategoryBody
}

// UpdateCategoryBody lists the editable fields. Absent fields are left unchanged.
type UpdateCategoryBody struct {
	Name *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"New name"`
	Type *string `json:"type,omitempty" enum:"income,expense" doc:"New kind of transaction the category files"`
}

type DeleteCategoryOutput struct{}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	categoryType, err := ledger.ParseTransactionType(input.Body.Type)
	if err != nil {
		return nil, httpio.ServiceError("invalid category type", err)
	}

	c, err := h.Categories.CreateCategory(ctx, userID, input.Body.Name, categoryType)
	if err != nil {
		return nil, httpio.ServiceError("failed to create category", err)
	}
	httpio.AddLogData(ctx, "categoryID", c.ID.String())

	return &CategoryOutput{Status: http.StatusCreated, Body: httpio.FromCategory(*c)}, nil
}

func (h *Handler) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	categories, err := h.Categories.ListCategories(ctx, userID)
	if err != nil {
		return nil, httpio.ServiceError("failed to list categories", err)
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]httpio.Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = httpio.FromCategory(c)
	}
	return out, nil
}

func (h *Handler) deleteCategory(ctx context.Context, input *CategoryPathInput) (*DeleteCategoryOutput, error) {
	userID, id, err := httpio.ParsePath(input.UserID, "category id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.Categories.DeleteCategory(ctx, userID, id); err != nil {
		return nil, httpio.ServiceError("failed to delete category", err)
	}
	return &DeleteCategoryOutput{}, nil
}

func (h *Handler) get(ctx context.Context, input *CategoryPathInput) (*CategoryOutput, error) {
	userID, id, err := httpio.ParsePath(input.UserID, "category id", input.ID)
	if err != nil {
		return nil, err
	}

	c, err := h.Categories.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, httpio.ServiceError("failed to get category", err)
	}
	return &CategoryOutput{Status: http.StatusOK, Body: httpio.FromCategory(*c)}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	userID, id, err := httpio.ParsePath(input.UserID, "category id", input.ID)
	if err != nil {
		return nil, err
	}
	update := service.CategoryUpdate{Name: omit.FromPtr(input.Body.Name)}
	if input.Body.Type != nil {
		categoryType, err := ledger.ParseTransactionType(*input.Body.Type)
		if err != nil {
			return nil, httpio.ServiceError("invalid category type", err)
		}
		update.Type = omit.From(categoryType)
	}

	c, err := h.Categories.UpdateCategory(ctx, userID, id, update)
	if err != nil {
		return nil, httpio.ServiceError("failed to update category", err)
	}
	return &CategoryOutput{Status: http.StatusOK, Body: httpio.FromCategory(*c)}, nil
}
