// Package pagestest provides an in-memory fake of the pages hosting API,
// meant to be used in tests.
package pagestest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
)

// Endpoint names used when counting calls.
const (
	EndpointListProjects  = "listProjects"
	EndpointCreateProject = "createProject"
	EndpointGetProject    = "getProject"
	EndpointUpload        = "upload"
	EndpointGetDeployment = "getDeployment"
)

// Upload is a recorded deployment upload.
type Upload struct {
	ProjectID string
	FileName  string
	Files     map[string][]byte
}

// Server is a fake pages hosting API. All exported fields may be set before
// the first request is made.
type Server struct {
	*httptest.Server

	// Token is the expected bearer token. Requests with any other token
	// get 401 (Unauthorized).
	Token string
	// CreateStatus overrides the status code of the create project endpoint.
	CreateStatus int
	// UploadMessage is returned as message from the upload endpoint.
	UploadMessage string
	// Deployments are returned in order from the get deployment endpoint.
	// The last deployment is repeated.
	Deployments []pagesapi.Deployment

	mu       sync.Mutex
	projects []pagesapi.Project
	calls    map[string]int
	uploads  []Upload
}

// NewServer starts a new fake server. It's closed when the test ends.
func NewServer(t interface{ Cleanup(func()) }, token string) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Token:         token,
		UploadMessage: "ok",
		calls:         make(map[string]int),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// AddProject adds an existing project to the fake server.
func (s *Server) AddProject(project pagesapi.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	s.projects = append(s.projects, project)
}

// Calls returns how many times an endpoint has been called.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// Uploads returns all recorded uploads.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Server) router() http.Handler {
	r := gin.New()
	r.Use(s.authenticate)

	r.GET("/pages", s.listProjects)
	r.POST("/pages", s.createProject)
	r.GET("/pages/cf/projects/:name", s.getProject)
	r.GET("/pages/cf/deployments/:name", s.getDeployment)
	r.POST("/pages/:projectId/deployments", s.upload)
	return r
}

func (s *Server) authenticate(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) count(endpoint string) {
	s.mu.Lock()
	s.calls[endpoint]++
	s.mu.Unlock()
}

func (s *Server) listProjects(c *gin.Context) {
	s.count(EndpointListProjects)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := pagesapi.ProjectList{Items: []pagesapi.ProjectListItem{}}
	for _, p := range s.projects {
		list.Items = append(list.Items, pagesapi.ProjectListItem{
			ID:   p.ID,
			Name: p.Name,
		})
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createProject(c *gin.Context) {
	s.count(EndpointCreateProject)
	var req pagesapi.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if s.CreateStatus != 0 && s.CreateStatus != http.StatusOK {
		c.JSON(s.CreateStatus, gin.H{"message": "project name not available"})
		return
	}
	s.mu.Lock()
	project := pagesapi.Project{
		ID:               uuid.NewString(),
		Name:             req.ProjectName,
		ProductionBranch: "main",
		Domains:          []string{},
	}
	s.projects = append(s.projects, project)
	s.mu.Unlock()
	c.JSON(http.StatusOK, pagesapi.CreateProjectResponse{ID: project.ID})
}

func (s *Server) getProject(c *gin.Context) {
	s.count(EndpointGetProject)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.Name == c.Param("name") {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
}

func (s *Server) getDeployment(c *gin.Context) {
	s.count(EndpointGetDeployment)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Deployments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "deployment not found"})
		return
	}
	d := s.Deployments[0]
	if len(s.Deployments) > 1 {
		s.Deployments = s.Deployments[1:]
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) upload(c *gin.Context) {
	s.count(EndpointUpload)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	files, err := readZip(fh.Open, fh.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.mu.Lock()
	s.uploads = append(s.uploads, Upload{
		ProjectID: c.Param("projectId"),
		FileName:  fh.Filename,
		Files:     files,
	})
	msg := s.UploadMessage
	s.mu.Unlock()
	c.JSON(http.StatusOK, pagesapi.UploadResponse{Message: msg})
}
