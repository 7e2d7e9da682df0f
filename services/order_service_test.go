package services

import (
	"testing"
	"time"

	"adminProject/models"
)

func TestChooseAssigneeSkipsCompanyWithActiveStop(t *testing.T) {
	today := date(2025, time.July, 15)
	candidates := []AssignmentCandidate{
		{
			Company: models.Company{ID: 1, Condition: models.CompanyConditionActive},
			Stops:   []DateInterval{{StartDate: date(2025, time.July, 10), EndDate: date(2025, time.July, 20)}},
		},
		{
			Company:    models.Company{ID: 2, Condition: models.CompanyConditionActive},
			OpenOrders: 5,
		},
	}

	// Приостановленная сегодня компания пропускается, даже если
	// у альтернативы больше открытых заявок
	chosen := ChooseAssignee(candidates, today)
	if chosen == nil || chosen.ID != 2 {
		t.Errorf("ChooseAssignee() = %v, want company 2", chosen)
	}
}

func TestChooseAssigneeSkipsCompanyWithActiveTerm(t *testing.T) {
	today := date(2025, time.July, 15)
	candidates := []AssignmentCandidate{
		{
			Company: models.Company{ID: 1, Condition: models.CompanyConditionActive},
			Terms:   []DateInterval{{StartDate: date(2025, time.July, 15), EndDate: date(2025, time.July, 15)}},
		},
		{
			Company: models.Company{ID: 2, Condition: models.CompanyConditionActive},
		},
	}

	chosen := ChooseAssignee(candidates, today)
	if chosen == nil || chosen.ID != 2 {
		t.Errorf("ChooseAssignee() = %v, want company 2", chosen)
	}
}

func TestChooseAssigneeIgnoresEndedAndPendingIntervals(t *testing.T) {
	today := date(2025, time.July, 15)
	candidates := []AssignmentCandidate{
		{
			Company: models.Company{ID: 1, Condition: models.CompanyConditionActive},
			Stops: []DateInterval{
				{StartDate: date(2025, time.July, 1), EndDate: date(2025, time.July, 5)},   // ENDED
				{StartDate: date(2025, time.July, 20), EndDate: date(2025, time.July, 25)}, // PENDING
			},
		},
	}

	// Завершенная и еще не начавшаяся приостановки не мешают назначению
	chosen := ChooseAssignee(candidates, today)
	if chosen == nil || chosen.ID != 1 {
		t.Errorf("ChooseAssignee() = %v, want company 1", chosen)
	}
}

func TestChooseAssigneeSkipsInactiveCondition(t *testing.T) {
	today := date(2025, time.July, 15)
	candidates := []AssignmentCandidate{
		{Company: models.Company{ID: 1, Condition: models.CompanyConditionSuspended}},
		{Company: models.Company{ID: 2, Condition: models.CompanyConditionWithdrawn}},
	}

	if chosen := ChooseAssignee(candidates, today); chosen != nil {
		t.Errorf("ChooseAssignee() = %v, want nil", chosen)
	}
}

func TestChooseAssigneePrefersFewestOpenOrders(t *testing.T) {
	today := date(2025, time.July, 15)
	candidates := []AssignmentCandidate{
		{Company: models.Company{ID: 1, Condition: models.CompanyConditionActive}, OpenOrders: 3},
		{Company: models.Company{ID: 2, Condition: models.CompanyConditionActive}, OpenOrders: 1},
		{Company: models.Company{ID: 3, Condition: models.CompanyConditionActive}, OpenOrders: 2},
	}

	chosen := ChooseAssignee(candidates, today)
	if chosen == nil || chosen.ID != 2 {
		t.Errorf("ChooseAssignee() = %v, want company 2", chosen)
	}
}

func TestChooseAssigneeNoCandidates(t *testing.T) {
	if chosen := ChooseAssignee(nil, date(2025, time.July, 15)); chosen != nil {
		t.Errorf("ChooseAssignee() = %v, want nil", chosen)
	}
}
