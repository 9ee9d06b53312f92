package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSingle_SendsMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/single-resume-check", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("resume")
		require.NoError(t, err)
		content, _ := io.ReadAll(f)
		assert.Equal(t, "cv.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-resume", string(content))

		assert.Equal(t, "Go developer", r.FormValue("job_description"))
		assert.Equal(t, "100", r.FormValue("max_score"))
		assert.Equal(t, "65", r.FormValue("cutoff_score"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"score": 72.5, "reasoning": "solid match", "resume_name": "cv.pdf",
			"job_description_source": "text", "chunks_used": 3,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	res, err := c.CheckSingle(context.Background(), SingleRequest{
		Resume:         File{Name: "cv.pdf", Data: []byte("%PDF-resume")},
		JobDescription: "Go developer",
		MaxScore:       100,
		CutoffScore:    65,
	})
	require.NoError(t, err)
	assert.Equal(t, 72.5, res.Score)
	assert.Equal(t, "solid match", res.Reasoning)
	assert.Equal(t, 3, res.ChunksUsed)
}

func TestCheckSingle_PrefersJDFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("job_description_file")
		assert.NoError(t, err)
		assert.Empty(t, r.FormValue("job_description"))
		_, _ = w.Write([]byte(`{"score": 10, "reasoning": "weak"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).CheckSingle(context.Background(), SingleRequest{
		Resume:             File{Data: []byte("r")},
		JobDescription:     "ignored",
		JobDescriptionFile: &File{Name: "jd.pdf", Data: []byte("jd")},
		MaxScore:           100,
	})
	require.NoError(t, err)
}

func TestCheckSingle_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "No resume file provided"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).CheckSingle(context.Background(), SingleRequest{
		Resume: File{Data: []byte("r")}, JobDescription: "jd", MaxScore: 100,
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "No resume file provided", apiErr.Message)
}

func TestCheckSingle_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).CheckSingle(context.Background(), SingleRequest{
		Resume: File{Data: []byte("r")}, JobDescription: "jd", MaxScore: 100,
	})
	assert.ErrorIs(t, err, data.ErrFetch)
}

func TestSingleRequest_Validate(t *testing.T) {
	ok := SingleRequest{Resume: File{Data: []byte("r")}, JobDescription: "jd", MaxScore: 100, CutoffScore: 70}
	require.NoError(t, ok.Validate())

	cases := map[string]func(r *SingleRequest){
		"no resume":     func(r *SingleRequest) { r.Resume = File{} },
		"no jd":         func(r *SingleRequest) { r.JobDescription = "  " },
		"zero max":      func(r *SingleRequest) { r.MaxScore = 0 },
		"negative cut":  func(r *SingleRequest) { r.CutoffScore = -1 },
		"cut above max": func(r *SingleRequest) { r.CutoffScore = 101 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := ok
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), data.ErrInvalid)
		})
	}
}

func TestCheckBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-checker", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("resume_1")
		assert.NoError(t, err)
		assert.Equal(t, "backend role", r.FormValue("job_description_0"))

		_ = json.NewEncoder(w).Encode(BatchResult{
			Results:              []Result{{Score: 50, ResumeName: "a.pdf"}, {Score: 60, ResumeName: "b.pdf"}},
			TotalProcessed:       2,
			ResumesCount:         2,
			JobDescriptionsCount: 1,
		})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL, time.Second).CheckBatch(context.Background(), BatchRequest{
		Resumes:         []File{{Name: "a.pdf", Data: []byte("a")}, {Name: "b.pdf", Data: []byte("b")}},
		JobDescriptions: []string{"backend role"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalProcessed)
	assert.Len(t, res.Results, 2)

	_, err = NewClient(srv.URL, time.Second).CheckBatch(context.Background(), BatchRequest{})
	assert.ErrorIs(t, err, data.ErrInvalid)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second).Ping(context.Background()))
}
