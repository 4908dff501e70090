package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func authTestRouter(lookup UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", UserAuth(lookup), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "user missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": user.Name})
	})
	return r
}

func TestUserAuthMissingHeader(t *testing.T) {
	r := authTestRouter(func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		t.Fatal("lookup must not run without a header")
		return nil, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User ID required") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestUserAuthMalformedHeader(t *testing.T) {
	r := authTestRouter(func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		t.Fatal("lookup must not run for a malformed id")
		return nil, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(UserIDHeader, "not-a-hex-id")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestUserAuthUnknownUser(t *testing.T) {
	r := authTestRouter(func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		return nil, ErrUserNotFound
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(UserIDHeader, primitive.NewObjectID().Hex())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestUserAuthStorageFault(t *testing.T) {
	r := authTestRouter(func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		return nil, errors.New("connection reset")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(UserIDHeader, primitive.NewObjectID().Hex())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestUserAuthResolvesAndInjectsUser(t *testing.T) {
	userID := primitive.NewObjectID()
	r := authTestRouter(func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		if id != userID {
			return nil, ErrUserNotFound
		}
		return &models.User{ID: id, Name: "A"}, nil
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(UserIDHeader, userID.Hex())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"name":"A"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestCurrentUserAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatal("expected no user on a bare context")
	}
}
