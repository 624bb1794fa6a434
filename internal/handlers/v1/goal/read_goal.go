package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/service"
)

type ListGoalsInput struct {
	UserID    string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	AccountID string `query:"accountID" doc:"Only goals funded from this account"`
	Position  int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit     int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
}

type ListGoalsCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

type ListGoalsResponseBody struct {
	Goals      []httpio.Goal    `json:"goals" doc:"Page of goals"`
	NextCursor *ListGoalsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListGoalsOutput struct {
	Body ListGoalsResponseBody
}

type DeleteGoalOutput struct{}

func (h *Handler) registerRead(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-goal",
		Method:      http.MethodGet,
		Path:        "/v1/goal/{id}",
		Summary:     "Get a goal with its progress",
		Tags:        []string{"Goals"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodGet,
		Path:        "/v1/goals",
		Summary:     "List goals",
		Tags:        []string{"Goals"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-goal",
		Method:        http.MethodDelete,
		Path:          "/v1/goal/{id}",
		Summary:       "Delete a goal",
		Description:   "Deletes the goal. Its transactions stay on the account without the goal link.",
		Tags:          []string{"Goals"},
		DefaultStatus: http.StatusNoContent,
	}, h.deleteGoal)
}

func (h *Handler) get(ctx context.Context, input *GoalPathInput) (*GoalOutput, error) {
	userID, goalID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	g, err := h.Goals.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, httpio.ServiceError("failed to get goal", err)
	}
	return &GoalOutput{Status: http.StatusOK, Body: httpio.FromGoal(*g)}, nil
}

func (h *Handler) list(ctx context.Context, input *ListGoalsInput) (*ListGoalsOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var accountID *uuid.UUID
	if input.AccountID != "" {
		id, err := httpio.ParseUUID("accountID", input.AccountID)
		if err != nil {
			return nil, err
		}
		accountID = &id
	}

	var cursor *service.GoalCursor
	if input.Position > 0 || input.Limit > 0 {
		cursor = &service.GoalCursor{Position: input.Position, Limit: input.Limit}
		if cursor.Limit == 0 {
			cursor.Limit = 20
		}
	}

	stopTimer := httpio.Timer(ctx, "listGoalsMs")
	goals, next, err := h.Goals.ListGoals(ctx, userID, accountID, cursor)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to list goals", err)
	}

	httpio.AddLogData(ctx, "goalCount", len(goals))

	resp := ListGoalsResponseBody{Goals: make([]httpio.Goal, len(goals))}
	for i, g := range goals {
		resp.Goals[i] = httpio.FromGoal(g)
	}
	if next != nil {
		resp.NextCursor = &ListGoalsCursor{Position: next.Position, Limit: next.Limit}
	}
	return &ListGoalsOutput{Body: resp}, nil
}

func (h *Handler) deleteGoal(ctx context.Context, input *GoalPathInput) (*DeleteGoalOutput, error) {
	userID, goalID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if err = h.Goals.DeleteGoal(ctx, userID, goalID); err != nil {
		return nil, httpio.ServiceError("failed to delete goal", err)
	}
	return &DeleteGoalOutput{}, nil
}
