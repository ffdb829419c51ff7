package cpm

// LoadProjectRequest is the body of POST /api/load-project.
type LoadProjectRequest struct {
	ProjectPath string `json:"projectPath"`
}

type LoadProjectResponse struct {
	Success     bool                  `json:"success"`
	Data        *ProjectDescriptorSet `json:"data"`
	ProjectPath string                `json:"projectPath"`
	Session     string                `json:"session"`
}

// SaveConfigRequest is the body of POST /api/save-config.
type SaveConfigRequest struct {
	Config map[string]string `json:"config"`
}

type SaveConfigResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	// HeaderSession carries the session a project was loaded into.
	HeaderSession = "X-Cpm-Session"
	// CookieSession is the cookie equivalent of HeaderSession.
	CookieSession = "cpm-session"
)
