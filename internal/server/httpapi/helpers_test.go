package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/dbx"
	"github.com/dmitrijs2005/resumekeeper/internal/logging"
	"github.com/dmitrijs2005/resumekeeper/internal/server/auth"
	"github.com/dmitrijs2005/resumekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumekeeper/internal/server/services"
	"github.com/dmitrijs2005/resumekeeper/internal/server/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

type capturedOTPs struct {
	mu    sync.Mutex
	codes map[string]string
}

func (c *capturedOTPs) SendOTP(_ context.Context, email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.codes == nil {
		c.codes = make(map[string]string)
	}
	c.codes[email] = code
	return nil
}

func (c *capturedOTPs) code(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[email]
}

type apiFixture struct {
	engine  *gin.Engine
	codec   *auth.TokenCodec
	authSvc *services.AuthService
	rm      *repomanager.MemoryRepositoryManager
	otps    *capturedOTPs
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	otps := &capturedOTPs{}
	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	tx := dbx.NoTx{}
	authSvc := services.NewAuthService(tx, rm, codec, auth.NewBcryptHasher(bcrypt.MinCost), otps, 10*time.Minute, logging.Nop{})

	engine := NewRouter(Deps{
		Auth:           authSvc,
		Students:       services.NewStudentService(tx, rm, logging.Nop{}),
		Resumes:        services.NewResumeService(tx, rm, blobs, logging.Nop{}),
		Codec:          codec,
		Accounts:       rm.Accounts(nil),
		Logger:         logging.Nop{},
		MaxUploadBytes: 1 << 10,
	})

	return &apiFixture{engine: engine, codec: codec, authSvc: authSvc, rm: rm, otps: otps}
}

// userToken registers an active USER and returns a token for it.
func (f *apiFixture) userToken(t *testing.T, username string) string {
	t.Helper()
	require.NoError(t, f.authSvc.Register(context.Background(), username, "pw-"+username))
	token, err := f.codec.Mint(username, common.RoleUser)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) adminToken(t *testing.T, username string) string {
	t.Helper()
	_, err := f.authSvc.EnsureAdmin(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	token, err := f.codec.Mint(username, common.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// upload posts a multipart resume form.
func (f *apiFixture) upload(t *testing.T, token, studentID, title, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("studentId", studentID))
	require.NoError(t, mw.WriteField("title", title))
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resumes/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func trimmed(w *httptest.ResponseRecorder) string {
	return strings.TrimSpace(w.Body.String())
}
