package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/tests"
)

func TestMilestoneAPI_Query(t *testing.T) {
	server := setup(t)

	py := testutil.CreateSkill(t, skillRepo, "Python", "Programming")
	p := testutil.CreatePath(t, pathRepo, milestoneRepo, py.ID, "sess", "Learn Python", 3)
	empty := testutil.CreatePath(t, pathRepo, milestoneRepo, py.ID, "sess", "Nothing", 0)

	tests := []httpTest{
		{
			name:     "path without milestones",
			path:     "/v1/milestones?learning_path_id=" + itoa(empty.ID),
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "missing learning_path_id",
			path:     "/v1/milestones",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error:  "learning_path_id is required",
				Fields: map[string]string{"learning_path_id": "this field is required"},
			}),
		},
		{
			name:     "invalid learning_path_id",
			path:     "/v1/milestones?learning_path_id=x",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error:  "invalid learning_path_id",
				Fields: map[string]string{"learning_path_id": "must be a positive integer"},
			}),
		},
	}
	runHTTPTests(t, server, tests)

	t.Run("ordered by day", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/milestones?learning_path_id="+itoa(p.ID))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var milestones []milestone.Milestone
		unmarchall(t, rec.Body.Bytes(), &milestones)
		require.Len(t, milestones, 3)
		for i, m := range milestones {
			assert.Equal(t, p.ID, m.LearningPathID)
			assert.Equal(t, i+1, m.DayNumber)
		}
	})
}

func TestMilestoneAPI_Update(t *testing.T) {
	server := setup(t)

	py := testutil.CreateSkill(t, skillRepo, "Python", "Programming")
	p := testutil.CreatePath(t, pathRepo, milestoneRepo, py.ID, "sess", "Learn Python", 2)
	milestones, err := milestoneRepo.QueryMilestones(context.Background(), p.ID)
	require.NoError(t, err)
	url := "/v1/milestones/" + itoa(milestones[0].ID)

	tests := []httpTest{
		{
			name:     "missing is_completed",
			method:   http.MethodPut,
			path:     url,
			body:     []byte(`{"notes": "hi"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid request", Fields: map[string]string{"is_completed": "this field is required"}}),
		},
		{
			name:     "unknown milestone",
			method:   http.MethodPut,
			path:     "/v1/milestones/999",
			body:     []byte(`{"is_completed": true}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "milestone not found"}),
		},
		{
			name:     "get unknown milestone",
			path:     "/v1/milestones/999",
			wantCode: http.StatusNotFound,
		},
	}
	runHTTPTests(t, server, tests)

	update := func(t *testing.T, body string) milestone.Milestone {
		req, rec := newRequest(http.MethodPut, url, []byte(body))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var m milestone.Milestone
		unmarchall(t, rec.Body.Bytes(), &m)
		return m
	}

	t.Run("complete with notes", func(t *testing.T) {
		m := update(t, `{"is_completed": true, "notes": " read the book "}`)
		assert.True(t, m.IsCompleted)
		assert.True(t, m.CompletedAt.Valid)
		assert.Equal(t, "read the book", m.Notes.String)
	})

	t.Run("notes are kept when omitted", func(t *testing.T) {
		m := update(t, `{"is_completed": true}`)
		assert.Equal(t, "read the book", m.Notes.String)
	})

	t.Run("uncomplete clears completed_at", func(t *testing.T) {
		m := update(t, `{"is_completed": false}`)
		assert.False(t, m.IsCompleted)
		assert.False(t, m.CompletedAt.Valid)
		assert.Equal(t, "read the book", m.Notes.String)
	})

	t.Run("empty notes clear them", func(t *testing.T) {
		m := update(t, `{"is_completed": false, "notes": ""}`)
		assert.False(t, m.Notes.Valid)
	})

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, url)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var m milestone.Milestone
		unmarchall(t, rec.Body.Bytes(), &m)
		assert.Equal(t, milestones[0].ID, m.ID)
		assert.Equal(t, 1, m.DayNumber)
	})
}
