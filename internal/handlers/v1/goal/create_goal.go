package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
)

type CreateGoalInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body   CreateGoalBody
}

type CreateGoalBody struct {
	AccountID    string `json:"accountID" required:"true" doc:"UUID of the account funding the goal"`
	Name         string `json:"name" minLength:"1" maxLength:"100" doc:"Goal name"`
	TargetAmount string `json:"targetAmount" required:"true" doc:"Positive decimal target"`
	Deadline     string `json:"deadline,omitempty" doc:"Optional deadline date (2006-01-02)"`
}

type GoalOutput struct {
	Status int
	Body   httpio.Goal
}

func (h *Handler) registerCreate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-goal",
		Method:        http.MethodPost,
		Path:          "/v1/goal",
		Summary:       "Create a savings goal",
		Description:   "Creates an empty goal funded from one of the user's accounts.",
		Tags:          []string{"Goals"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
}

func (h *Handler) create(ctx context.Context, input *CreateGoalInput) (*GoalOutput, error) {
	userID, err := httpio.ParseUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	accountID, err := httpio.ParseUUID("accountID", input.Body.AccountID)
	if err != nil {
		return nil, err
	}
	target, err := httpio.ParseAmount("targetAmount", input.Body.TargetAmount)
	if err != nil {
		return nil, err
	}
	deadline, err := httpio.ParseDate("deadline", input.Body.Deadline)
	if err != nil {
		return nil, err
	}

	stopTimer := httpio.Timer(ctx, "createGoalMs")
	g, err := h.Goals.CreateGoal(ctx, userID, accountID, input.Body.Name, target, deadline)
	stopTimer()
	if err != nil {
		return nil, httpio.ServiceError("failed to create goal", err)
	}

	httpio.AddLogData(ctx, "goalID", g.ID.String())
	return &GoalOutput{Status: http.StatusCreated, Body: httpio.FromGoal(*g)}, nil
}
