package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/jwt"
	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Issues a bearer token for a client of the bill payment API.
func main() {
	_ = godotenv.Load()

	name := flag.String("name", "", "client name")
	id := flag.String("id", "", "client id, generated when empty")
	scopes := flag.String("scopes", "bills:read", "comma separated scopes, * for all")
	ttl := flag.Duration("ttl", 24*time.Hour*365, "token lifetime")
	flag.Parse()

	if *id == "" {
		*id = uuid.NewString()
	}

	client := types.ApiClient{
		ID:     *id,
		Name:   *name,
		Scopes: splitScopes(*scopes),
	}
	if err := validation.Validate(client); err != nil {
		logger.Error.Println(err)
		os.Exit(2)
	}

	token, expiresAt, err := jwt.NewManager(os.Getenv("JWT_SECRET")).GenerateToken(client, *ttl)
	if err != nil {
		logger.Error.Println("Error generating token", err)
		os.Exit(1)
	}

	logger.Info.Printf("Token for %s (%s) expires at %s", client.Name, client.ID, expiresAt.Format(time.RFC3339))
	fmt.Println(token)
}

func splitScopes(raw string) []string {
	scopes := make([]string, 0)
	for _, scope := range strings.Split(raw, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}
