package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stokaro/tabula/bootstrap"
	"github.com/stokaro/tabula/config"
	"github.com/stokaro/tabula/dbconn"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the first account and its superuser",
	Long: `Create the main account and its superuser in one transaction.

The account id and name come from TABULA_MAIN_ACCOUNT_ID and
TABULA_MAIN_ACCOUNT_NAME. The superuser credentials come from
TABULA_SUPER_USER_USERNAME and TABULA_SUPER_USER_PASSWORD, or from a YAML
credentials file when --credentials is given.

The operation refuses to run when a superuser already exists or when the
account id is already taken.`,
	RunE: runBootstrap,
}

const credentialsFlag = "credentials"

var bootstrapFlags = map[string]cobraflags.Flag{
	credentialsFlag: &cobraflags.StringFlag{
		Name:  credentialsFlag,
		Value: "",
		Usage: "Path to a YAML file with the superuser username and password",
	},
}

// NewBootstrapCommand returns the bootstrap command.
func NewBootstrapCommand() *cobra.Command {
	cobraflags.RegisterMap(bootstrapCmd, bootstrapFlags)
	return bootstrapCmd
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	username := cfg.SuperUserUsername
	password := cfg.SuperUserPassword
	if path := bootstrapFlags[credentialsFlag].GetString(); path != "" {
		creds, err := config.LoadCredentials(path)
		if err != nil {
			return err
		}
		username = creds.Username
		password = creds.Password
	}

	accountID, err := uuid.Parse(cfg.MainAccountID)
	if err != nil {
		return fmt.Errorf("TABULA_MAIN_ACCOUNT_ID is not a valid uuid: %w", err)
	}

	db, err := dbconn.Open(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	userIn := bootstrap.UserInput{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		Roles:     bootstrap.SuperUserRole,
		AccountID: accountID,
	}
	accountIn := bootstrap.AccountInput{
		ID:   accountID,
		Name: cfg.MainAccountName,
	}

	if err := bootstrap.Run(context.Background(), db, userIn, accountIn); err != nil {
		return formatError(err)
	}
	fmt.Printf("Created account %q and superuser %q\n", accountIn.Name, userIn.Username)
	return nil
}

// formatError maps the tagged bootstrap outcomes onto CLI messages. The exit
// code is handled by cobra: any returned error exits non-zero.
func formatError(err error) error {
	var userErr *bootstrap.UserInvalidError
	if errors.As(err, &userErr) {
		return fmt.Errorf("superuser rejected: %w", err)
	}
	var accountErr *bootstrap.AccountInvalidError
	if errors.As(err, &accountErr) {
		return fmt.Errorf("account rejected: %w", err)
	}
	switch {
	case errors.Is(err, bootstrap.ErrSuperUserExists),
		errors.Is(err, bootstrap.ErrAccountExists):
		return fmt.Errorf("nothing to do: %w", err)
	default:
		return fmt.Errorf("bootstrap failed: %w", err)
	}
}
