package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pable/go-ipl-stats/internal/auth"
	"github.com/pable/go-ipl-stats/internal/report"
	"github.com/pable/go-ipl-stats/internal/storage"
)

var (
	passwordStdin bool
	userDropForce bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts that can log in to the API",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Register an account",
	Long:  "Register an account. The password is prompted for, or read from the first line of stdin with --password-stdin.",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered accounts",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userDropCmd = &cobra.Command{
	Use:   "drop <email>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDrop,
}

func init() {
	userAddCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	userDropCmd.Flags().BoolVarP(&userDropForce, "force", "f", false, "skip confirmation prompt")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDropCmd)
}

func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !passwordStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Registration does not sign tokens, so any non-empty key will do.
	svc, err := auth.NewService(db, "unused", cfg.SessionTTL)
	if err != nil {
		return err
	}
	u, err := svc.Register(cmd.Context(), args[0], args[1], password)
	switch {
	case errors.Is(err, storage.ErrUserExists):
		return fmt.Errorf("an account for %s already exists", args[1])
	case err != nil:
		return fmt.Errorf("register: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := db.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintUsers(cmd.OutOrStdout(), users)
	return nil
}

func runUserDrop(cmd *cobra.Command, args []string) error {
	email := args[0]
	if !userDropForce {
		fmt.Fprintf(cmd.ErrOrStderr(), "This will permanently delete the account: %s\n", email)
		fmt.Fprintf(cmd.ErrOrStderr(), "Re-run with --force to confirm.\n")
		return nil
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteUser(cmd.Context(), email); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No account for %s, nothing to drop.\n", email)
			return nil
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", email)
	return nil
}
