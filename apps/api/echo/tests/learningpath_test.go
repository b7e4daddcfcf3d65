package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/autolearn/core/learningpath"
	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/core/skill"
	"github.com/trezcool/autolearn/tests"
)

func TestPathAPI_Query(t *testing.T) {
	server := setup(t)

	py := testutil.CreateSkill(t, skillRepo, "Python", "Programming")
	guitar := testutil.CreateSkill(t, skillRepo, "Guitar", "")

	now := time.Now().UTC()
	older := testutil.CreatePath(t, pathRepo, milestoneRepo, py.ID, "sess-1", "Learn Python", 7, now.Add(-time.Hour))
	newer := testutil.CreatePath(t, pathRepo, milestoneRepo, guitar.ID, "sess-1", "Learn Guitar", 3, now)
	testutil.CreatePath(t, pathRepo, milestoneRepo, py.ID, "sess-2", "Other", 3, now)

	tests := []httpTest{
		{
			name:     "newest first, joined with skill",
			path:     "/v1/learning-paths?user_session=sess-1",
			wantCode: http.StatusOK,
			wantData: marchallList(t,
				learningpath.PathWithSkill{LearningPath: newer, SkillName: "Guitar", Category: guitar.Category, DifficultyLevel: guitar.DifficultyLevel},
				learningpath.PathWithSkill{LearningPath: older, SkillName: "Python", Category: py.Category, DifficultyLevel: py.DifficultyLevel},
			),
		},
		{
			name:     "unknown session",
			path:     "/v1/learning-paths?user_session=nobody",
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "missing session",
			path:     "/v1/learning-paths",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error:  "user session is required",
				Fields: map[string]string{"user_session": "this field is required"},
			}),
		},
	}
	runHTTPTests(t, server, tests)
}

func TestPathAPI_Retrieve(t *testing.T) {
	server := setup(t)

	py := testutil.CreateSkill(t, skillRepo, "Python", "Programming")
	p := testutil.CreatePath(t, pathRepo, milestoneRepo, py.ID, "sess", "Learn Python", 2)

	tests := []httpTest{
		{
			name:     "existing path",
			path:     "/v1/learning-paths/" + itoa(p.ID),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, p),
		},
		{
			name:     "unknown path",
			path:     "/v1/learning-paths/999",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "learning path not found"}),
		},
		{
			name:     "milestones of unknown path",
			path:     "/v1/learning-paths/999/milestones",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "learning path not found"}),
		},
		{
			name:     "progress of unknown path",
			path:     "/v1/learning-paths/999/progress",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "invalid id",
			path:     "/v1/learning-paths/0",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid id", Fields: map[string]string{"id": "must be a positive integer"}}),
		},
	}
	runHTTPTests(t, server, tests)
}

func TestPathAPI_Create(t *testing.T) {
	server := setup(t)

	py := testutil.CreateSkill(t, skillRepo, "Python", "Programming")

	tests := []httpTest{
		{
			name:     "missing title",
			method:   http.MethodPost,
			path:     "/v1/learning-paths",
			body:     []byte(fmt.Sprintf(`{"skill_id": %d, "user_session": "sess"}`, py.ID)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid request", Fields: map[string]string{"title": "this field is required"}}),
		},
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/v1/learning-paths",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error: "invalid request",
				Fields: map[string]string{
					"skill_id":     "this field is required",
					"user_session": "this field is required",
					"title":        "this field is required",
				},
			}),
		},
		{
			name:     "unknown skill",
			method:   http.MethodPost,
			path:     "/v1/learning-paths",
			body:     []byte(`{"skill_id": 999, "user_session": "sess", "title": "Ghost"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "skill not found"}),
		},
	}
	runHTTPTests(t, server, tests)

	assert.Equal(t, 0, testutil.CountRows(t, db, "learning_paths"))
	assert.Equal(t, 0, testutil.CountRows(t, db, "milestones"))
}

func TestPathAPI_CompleteFlow(t *testing.T) {
	tests := []struct {
		name        string
		skill       string // POST /v1/skills body
		totalDays   string // "total_days" JSON value, omitted when empty
		wantDays    int
		wantPercent int // after completing day 1
	}{
		{
			name:        "default days",
			skill:       `{"name": "Rust", "category": "Programming"}`,
			wantDays:    30,
			wantPercent: 3,
		},
		{
			name:        "custom days",
			skill:       `{"name": "Rust", "category": "Programming", "difficulty_level": "intermediate", "estimated_duration_days": 21}`,
			totalDays:   "21",
			wantDays:    21,
			wantPercent: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setup(t)

			// create the skill
			req, rec := newRequest(http.MethodPost, "/v1/skills", []byte(tt.skill))
			server.ServeHTTP(rec, req)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			var s skill.Skill
			unmarchall(t, rec.Body.Bytes(), &s)

			// create a path
			body := fmt.Sprintf(`{"skill_id": %d, "user_session": "sess", "title": "Learn Rust"`, s.ID)
			if tt.totalDays != "" {
				body += `, "total_days": ` + tt.totalDays
			}
			req, rec = newRequest(http.MethodPost, "/v1/learning-paths", []byte(body+"}"))
			server.ServeHTTP(rec, req)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var p learningpath.LearningPath
			unmarchall(t, rec.Body.Bytes(), &p)
			assert.NotZero(t, p.ID)
			assert.Equal(t, s.ID, p.SkillID)
			assert.Equal(t, tt.wantDays, p.TotalDays)
			assert.Equal(t, "sess", p.UserSession)

			// its milestones
			req, rec = newRequest(http.MethodGet, fmt.Sprintf("/v1/learning-paths/%d/milestones", p.ID))
			server.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var milestones []milestone.Milestone
			unmarchall(t, rec.Body.Bytes(), &milestones)
			require.Len(t, milestones, tt.wantDays)
			for i, m := range milestones {
				assert.Equal(t, i+1, m.DayNumber)
				assert.False(t, m.IsCompleted)
			}
			assert.Equal(t, "Day 1: Learning Goals", milestones[0].Title)
			assert.Equal(t, fmt.Sprintf("Complete daily learning objectives for day %d", tt.wantDays), milestones[tt.wantDays-1].Description)

			// complete day 1
			req, rec = newRequest(http.MethodPut, "/v1/milestones/"+itoa(milestones[0].ID), []byte(`{"is_completed": true, "notes": "done"}`))
			server.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var m milestone.Milestone
			unmarchall(t, rec.Body.Bytes(), &m)
			assert.True(t, m.IsCompleted)
			assert.True(t, m.CompletedAt.Valid)
			assert.Equal(t, "done", m.Notes.String)

			// progress
			req, rec = newRequest(http.MethodGet, fmt.Sprintf("/v1/learning-paths/%d/progress", p.ID))
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{
				wantCode: http.StatusOK,
				wantData: marchallObj(t, learningpath.Progress{
					LearningPathID:      p.ID,
					TotalMilestones:     tt.wantDays,
					CompletedMilestones: 1,
					Percentage:          tt.wantPercent,
					CurrentWeek:         1,
				}),
			}, rec)
		})
	}
}

func TestPathAPI_CreateNegativeDays(t *testing.T) {
	server := setup(t)

	py := testutil.CreateSkill(t, skillRepo, "Python", "Programming")

	body := fmt.Sprintf(`{"skill_id": %d, "user_session": "sess", "title": "Nothing", "total_days": -3}`, py.ID)
	req, rec := newRequest(http.MethodPost, "/v1/learning-paths", []byte(body))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p learningpath.LearningPath
	unmarchall(t, rec.Body.Bytes(), &p)
	assert.Equal(t, -3, p.TotalDays)
	assert.Equal(t, 0, testutil.CountRows(t, db, "milestones"))

	req, rec = newRequest(http.MethodGet, fmt.Sprintf("/v1/learning-paths/%d/progress", p.ID))
	server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, learningpath.Progress{LearningPathID: p.ID, CurrentWeek: 1}),
	}, rec)
}
