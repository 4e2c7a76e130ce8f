package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/service"
	"impactecho-backend/internal/session"
)

func TestCauseService_SubmitCauseRequest(t *testing.T) {
	orgCtx := session.WithContext(context.Background(), session.Organization("NGOAAAAAAAA", "Org A", "orga"))

	t.Run("organization comes from session", func(t *testing.T) {
		reqs := new(MockCauseRequestRepo)
		svc := service.NewCauseService(reqs, new(MockCauseRepo), nil)

		reqs.On("Create", orgCtx, mock.MatchedBy(func(r *domain.CauseRequest) bool {
			return r.OrgIdentifier == "NGOAAAAAAAA" &&
				r.OrgName == "Org A" &&
				r.Title == "Clean Water" &&
				r.Description == "alert(1) wells"
		})).Return(nil).Once()

		_, err := svc.SubmitCauseRequest(orgCtx, service.CauseInput{
			Title:          "Clean Water",
			Description:    "<script>bad()</script>alert(1) <em>wells</em>",
			GoalAmount:     5000,
			ImageReference: "w.png",
		})
		require.NoError(t, err)
		reqs.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		reqs := new(MockCauseRequestRepo)
		svc := service.NewCauseService(reqs, new(MockCauseRepo), nil)

		for _, in := range []service.CauseInput{
			{Description: "d", GoalAmount: 1, ImageReference: "i"},
			{Title: "t", GoalAmount: 1, ImageReference: "i"},
			{Title: "t", Description: "d", GoalAmount: 1},
			{Title: "t", Description: "d", GoalAmount: -5, ImageReference: "i"},
		} {
			_, err := svc.SubmitCauseRequest(orgCtx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
		reqs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin cannot submit", func(t *testing.T) {
		svc := service.NewCauseService(new(MockCauseRequestRepo), new(MockCauseRepo), nil)
		_, err := svc.SubmitCauseRequest(adminCtx(), service.CauseInput{Title: "t", Description: "d", GoalAmount: 1, ImageReference: "i"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCauseService_ListMyCauseRequests(t *testing.T) {
	orgCtx := session.WithContext(context.Background(), session.Organization("NGOAAAAAAAA", "Org A", "orga"))
	reqs := new(MockCauseRequestRepo)
	svc := service.NewCauseService(reqs, new(MockCauseRepo), nil)

	reqs.On("ListByOrg", orgCtx, "NGOAAAAAAAA").Return([]domain.CauseRequest{{ID: 1, OrgIdentifier: "NGOAAAAAAAA"}}, nil).Once()

	mine, err := svc.ListMyCauseRequests(orgCtx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = svc.ListMyCauseRequests(context.Background())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCauseService_ListCausesIsPublic(t *testing.T) {
	causes := new(MockCauseRepo)
	svc := service.NewCauseService(new(MockCauseRequestRepo), causes, nil)
	ctx := context.Background()

	causes.On("List", ctx).Return([]domain.Cause{{ID: 1, Title: "Relief"}}, nil).Once()
	list, err := svc.ListCauses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Relief", list[0].Title)
}
