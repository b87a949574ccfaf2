// Package httpapi exposes the resumekeeper services over HTTP using gin.
package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/dmitrijs2005/resumekeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Authenticator is the account side of the API.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	RequestSignup(ctx context.Context, username, email string) error
	VerifyOTPAndActivate(ctx context.Context, email, otp, password string) error
	Register(ctx context.Context, username, password string) error
}

type StudentAPI interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, owner string, st *models.Student) (*models.Student, error)
	Update(ctx context.Context, id int64, st *models.Student) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type ResumeAPI interface {
	List(ctx context.Context) ([]models.Resume, error)
	Get(ctx context.Context, id int64) (*models.Resume, error)
	AddToStudent(ctx context.Context, studentID int64, r *models.Resume) (*models.Resume, error)
	Upload(ctx context.Context, studentID int64, title string, u services.Upload) (*models.Resume, error)
	DownloadForUser(ctx context.Context, username string) (*models.Resume, io.ReadCloser, error)
}

// Deps are the collaborators of the router.
type Deps struct {
	Auth           Authenticator
	Students       StudentAPI
	Resumes        ResumeAPI
	Codec          *auth.TokenCodec
	Accounts       AccountFinder
	Logger         logging.Logger
	MaxUploadBytes int64
}

type handlers struct {
	auth      Authenticator
	students  StudentAPI
	resumes   ResumeAPI
	maxUpload int64
	logger    logging.Logger
}

// NewRouter builds the gin engine with the middleware pipeline
// (request log, panic recovery, authentication gate) and all routes.
func NewRouter(d Deps) *gin.Engine {
	useJSONFieldNames()

	l := d.Logger.With("module", "http")
	h := &handlers{
		auth:      d.Auth,
		students:  d.Students,
		resumes:   d.Resumes,
		maxUpload: d.MaxUploadBytes,
		logger:    l,
	}

	r := gin.New()
	r.Use(RequestLogger(l), Recovery(l), Gate(d.Codec, d.Accounts, l))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.POST("/auth/login", h.login)

	api := r.Group("/api")
	api.POST("/signup", h.signup)
	api.POST("/validateotp", h.validateOTP)
	api.POST("/register", h.register)

	st := r.Group("/students", RequireAuthenticated(l))
	st.GET("", h.listStudents)
	st.GET("/:id", h.getStudent)
	st.POST("/add", h.createStudent)
	st.PUT("/:id", h.updateStudent)
	st.DELETE("/:id", h.deleteStudent)

	rs := r.Group("/resumes")
	rs.GET("", RequireRole(l, common.RoleAdmin), h.listResumes)
	rs.GET("/:id", RequireRole(l, common.RoleUser, common.RoleAdmin), h.getResume)
	rs.POST("/:id/add", RequireRole(l, common.RoleUser, common.RoleAdmin), h.addResume)
	rs.POST("/upload", RequireRole(l, common.RoleUser), h.uploadResume)
	rs.GET("/download/me", RequireAuthenticated(l), h.downloadMyResume)

	return r
}
