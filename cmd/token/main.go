// Command token prepares operator credentials for the admin API.
//
//	token hash <password>            print a bcrypt hash for api.operatorpasswordhash
//	token mint [--ttl 1h] [--agent]  print a bearer token signed with api.jwtsigningkey
package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"

	"github.com/vietanh2810/isk-lottery/internal/config"
	"github.com/vietanh2810/isk-lottery/internal/pkg/jwthelper"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: token hash <password> | token mint [--config path] [--ttl duration] [--agent ua]")
	}

	switch args[0] {
	case "hash":
		if len(args) != 2 {
			return fmt.Errorf("usage: token hash <password>")
		}

		hash, err := service.HashPassword(args[1])
		if err != nil {
			return err
		}
		fmt.Println(hash)

		return nil
	case "mint":
		return mint(args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	path := fs.String("config", "./cmd/app/config.yml", "configuration file")
	ttl := fs.Duration("ttl", 0, "token lifetime (defaults to api.jwtttl)")
	agent := fs.String("agent", "", "user agent the token is bound to; empty binds to none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conf, err := config.Load(*path)
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	lifetime := conf.API.JWTTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := jwthelper.GenerateToken([]byte(conf.API.JWTSigningKey), conf.API.OperatorUsername, *agent, lifetime)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Now().Add(lifetime).Format(time.RFC3339))

	return nil
}
