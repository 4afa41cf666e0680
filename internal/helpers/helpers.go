package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AvatarFolder = "avatars"
	EventsFolder = "events"
)

// ValidateToken verifies a token issued by the auth collaborator against its
// published JWKS. When the JWKS endpoint is unreachable in development, the
// token is parsed without signature verification so local work can proceed.
func ValidateToken(tokenStr string) (*TokenClaims, error) {
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL == "" {
		return nil, errors.New("AUTH_JWKS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		if os.Getenv("ENVIRONMENT") == "development" {
			token, _, parseErr := jwt.NewParser().ParseUnverified(tokenStr, &TokenClaims{})
			if parseErr != nil {
				return nil, fmt.Errorf("JWKS fetch failed and fallback parsing failed: %v", parseErr)
			}
			claims, ok := token.Claims.(*TokenClaims)
			if !ok {
				return nil, errors.New("invalid token claims")
			}
			return claims, nil
		}
		return nil, fmt.Errorf("JWKS fetch failed: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug builds a URL-safe slug from the given parts.
func GenerateSlug(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))
	return strings.Trim(slugStrip.ReplaceAllString(joined, "-"), "-")
}

// StringTrim trims whitespace and surrounding quotes that show up when
// clients pass values as JSON strings or templates.
func StringTrim(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'")
}

// UploadImages pushes local or remote image references to Cloudinary and
// returns the hosted URLs alongside the public IDs needed for cleanup.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, images []string, folder string) ([]string, []string, error) {
	var urls, publicIDs []string
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			continue
		}
		res, err := cld.Upload.Upload(ctx, img, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"campushub"},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to upload image %s: %v", img, err)
		}
		urls = append(urls, res.SecureURL)
		publicIDs = append(publicIDs, res.PublicID)
	}
	return urls, publicIDs, nil
}

// DeleteImages removes previously uploaded images, best effort.
func DeleteImages(ctx context.Context, cld *cloudinary.Cloudinary, folder string, publicIDs []string) {
	if cld == nil {
		return
	}
	for _, id := range publicIDs {
		_, _ = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	}
}
