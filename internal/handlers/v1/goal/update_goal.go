package goal

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httpio"
	"github.com/carson-networks/ledger-server/internal/service"
)

type UpdateGoalInput struct {
	UserID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID     string `path:"id" doc:"Goal UUID"`
	Body   UpdateGoalBody
}

// UpdateGoalBody lists the editable fields. Absent fields are left unchanged.
type UpdateGoalBody struct {
	Name         *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"New name"`
	TargetAmount *string `json:"targetAmount,omitempty" doc:"New positive decimal target"`
	Deadline     *string `json:"deadline,omitempty" doc:"New deadline date (2006-01-02)"`
}

func (h *Handler) registerUpdate(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-goal",
		Method:      http.MethodPatch,
		Path:        "/v1/goal/{id}",
		Summary:     "Update a goal",
		Description: "Changes the name, target or deadline of a goal. The saved amount only changes through deposits and withdrawals.",
		Tags:        []string{"Goals"},
	}, h.update)
}

func parseUpdateGoalBody(body *UpdateGoalBody) (service.GoalUpdate, error) {
	update := service.GoalUpdate{Name: omit.FromPtr(body.Name)}
	if body.TargetAmount != nil {
		target, err := httpio.ParseAmount("targetAmount", *body.TargetAmount)
		if err != nil {
			return service.GoalUpdate{}, err
		}
		update.TargetAmount = omit.From(target)
	}
	if body.Deadline != nil {
		deadline, err := httpio.ParseDate("deadline", *body.Deadline)
		if err != nil {
			return service.GoalUpdate{}, err
		}
		update.Deadline = omit.From(deadline)
	}
	return update, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateGoalInput) (*GoalOutput, error) {
	userID, goalID, err := parsePath(input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateGoalBody(&input.Body)
	if err != nil {
		return nil, err
	}

	g, err := h.Goals.UpdateGoal(ctx, userID, goalID, update)
	if err != nil {
		return nil, httpio.ServiceError("failed to update goal", err)
	}
	return &GoalOutput{Status: http.StatusOK, Body: httpio.FromGoal(*g)}, nil
}
