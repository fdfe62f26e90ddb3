// Command authflow-demo walks the interactive login, MFA, and recovery
// flows against a live backend. Configuration comes from the environment
// (optionally via a .env file):
//
//	AUTHFLOW_BASE_URL      backend base URL (required)
//	AUTHFLOW_PROFILE       credential profile path (default: user config dir)
//	AUTHFLOW_REDIS_ADDR    use a Redis credential profile instead of a file
//	AUTHFLOW_REDIS_NS      Redis profile namespace (default "default")
//	SENTRY_DSN             forward failed steps to Sentry when set
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	authflow "github.com/MrEthical07/authflow"
	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("AUTHFLOW_BASE_URL")
	if baseURL == "" {
		log.Fatal("AUTHFLOW_BASE_URL is required")
	}

	creds, err := buildStore()
	if err != nil {
		log.Fatalf("credential store: %v", err)
	}

	gw, err := gateway.NewHTTP(baseURL, gateway.WithTokenSource(authflow.StoreTokenSource(creds)))
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	builder := authflow.New().
		WithGateway(gw).
		WithStore(creds).
		WithAuditSink(authflow.NewJSONWriterSink(os.Stderr))

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, AttachStacktrace: true}); err != nil {
			log.Fatalf("sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
		builder = builder.WithAuditSink(authflow.NewSentrySink(nil))
	}

	client, err := builder.Build()
	if err != nil {
		log.Fatalf("build client: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	in := bufio.NewReader(os.Stdin)

	if client.IsAuthenticated(ctx) {
		fmt.Println("already authenticated; logging out first")
		if err := client.Logout(ctx); err != nil {
			log.Fatalf("logout: %v", err)
		}
	}

	if err := runLogin(ctx, client, in); err != nil {
		log.Fatalf("login: %v", err)
	}

	if claims, err := client.SessionClaims(ctx); err == nil {
		fmt.Printf("authenticated as %s (token expires %s)\n", claims.UserID, claims.ExpiresAt.Format(time.RFC3339))
	} else {
		fmt.Println("authenticated")
	}
}

func buildStore() (store.Store, error) {
	if addr := os.Getenv("AUTHFLOW_REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		return store.NewRedis(client, os.Getenv("AUTHFLOW_REDIS_NS"))
	}

	path := os.Getenv("AUTHFLOW_PROFILE")
	if path == "" {
		var err error
		path, err = store.DefaultProfilePath("authflow-demo")
		if err != nil {
			return nil, err
		}
	}
	return store.NewFile(path)
}

func runLogin(ctx context.Context, client *authflow.Client, in *bufio.Reader) error {
	flow := client.NewLoginFlow()

	username := prompt(in, "username: ")
	password := prompt(in, "password: ")

	outcome, err := flow.Submit(ctx, authflow.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	if outcome.Authenticated {
		return nil
	}

	fmt.Printf("second factor required; enrolled methods: %v\n", outcome.Methods)
	method := authflow.MFAMethod(prompt(in, "method: "))
	if err := flow.RequestOTP(ctx, method); err != nil {
		return err
	}

	for {
		otp := prompt(in, "one-time code: ")
		remember := strings.HasPrefix(strings.ToLower(prompt(in, "remember this device? [y/N]: ")), "y")

		if _, err := flow.VerifyOTP(ctx, otp, remember); err != nil {
			if flow.State() == authflow.LoginOTPRejected {
				fmt.Printf("code rejected (%v); try again\n", err)
				continue
			}
			return err
		}
		return nil
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
