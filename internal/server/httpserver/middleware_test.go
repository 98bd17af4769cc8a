package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"projectboard/pkg/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(secret string) (*gin.Engine, *int) {
	var seenUserID int

	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/projects", func(c *gin.Context) {
		id, _ := c.Get("user_id")
		seenUserID = id.(int)
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	return r, &seenUserID
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r, _ := protectedRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r, _ := protectedRouter("secret")

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, seenUserID := protectedRouter("secret")

	token, err := util.GenerateJWT(42, "secret")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if *seenUserID != 42 {
		t.Fatalf("user_id = %d, want 42", *seenUserID)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r, _ := protectedRouter("secret")

	token, err := util.GenerateJWT(42, "other-secret")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
