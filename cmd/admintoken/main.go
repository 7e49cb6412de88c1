// Command admintoken issues an operator token for the /admin routes.
//
//	JWT_SECRET=... go run ./cmd/admintoken --operator ana --exp 86400
package main

import (
	"fmt"
	"os"

	"github.com/freitasmatheusrn/liquid-catalog/pkg/auth"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	flags := pflag.NewFlagSet("admintoken", pflag.ExitOnError)
	flags.String("operator", "", "operator identifier stored in the token")
	flags.String("secret", "", "signing secret (defaults to JWT_SECRET)")
	flags.Int("exp", 0, "token lifetime in seconds (defaults to ADMIN_TOKEN_EXP)")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	v.SetDefault("ADMIN_TOKEN_EXP", 2592000)
	v.AutomaticEnv()
	_ = v.BindPFlag("JWT_SECRET", flags.Lookup("secret"))
	_ = v.BindPFlag("ADMIN_TOKEN_EXP", flags.Lookup("exp"))
	_ = v.BindPFlag("OPERATOR", flags.Lookup("operator"))

	operator := v.GetString("OPERATOR")
	if operator == "" {
		fmt.Fprintln(os.Stderr, "--operator is required")
		os.Exit(2)
	}

	claims := auth.NewClaims(operator, auth.RoleOperator, v.GetInt("ADMIN_TOKEN_EXP"))
	token, err := auth.GenerateJWT(claims, v.GetString("JWT_SECRET"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
