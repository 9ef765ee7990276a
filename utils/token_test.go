package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanassist/urban-assist/models"
)

func testUser() *models.User {
	u := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}
	u.ID = 42
	return u
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
	assert.Nil(t, claims["refresh"])

	id, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestRefreshTokenCarriesMarker(t *testing.T) {
	_, refresh, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	claims, err := ParseToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, true, claims["refresh"])
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString(JWTSecret())
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestUserIDFromClaims(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
		want   uint
		ok     bool
	}{
		{"float64", jwt.MapClaims{"id": float64(7)}, 7, true},
		{"string", jwt.MapClaims{"id": "7"}, 7, true},
		{"uint", jwt.MapClaims{"id": uint(7)}, 7, true},
		{"int", jwt.MapClaims{"id": 7}, 7, true},
		{"missing", jwt.MapClaims{}, 0, false},
		{"bad string", jwt.MapClaims{"id": "seven"}, 0, false},
		{"bool", jwt.MapClaims{"id": true}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := UserIDFromClaims(tc.claims)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTokenTTL(t *testing.T) {
	claims := jwt.MapClaims{"exp": float64(time.Now().Add(time.Hour).Unix())}
	ttl := TokenTTL(claims)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	assert.Equal(t, time.Duration(0), TokenTTL(jwt.MapClaims{}))
}
