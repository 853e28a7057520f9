package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var installZsh bool

// completionCmd writes shell completion scripts for supported shells. It
// also supports an automated zsh installation via --install-zsh which will
// write the completion file into ~/.zfunc/_tcx and optionally update
// ~/.zshrc after an explicit user confirmation.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if installZsh {
			fmt.Println("This command will install zsh completion for `tcx` into your home directory:")
			fmt.Println(" - Completion file: ~/.zfunc/_tcx")
			fmt.Println(" - It will also attempt to update ~/.zshrc to add ~/.zfunc to your fpath and ensure compinit is run.")
			fmt.Print("Proceed with automatic installation? (yes/no): ")
			reader := bufio.NewReader(os.Stdin)
			resp, _ := reader.ReadString('\n')
			resp = strings.TrimSpace(strings.ToLower(resp))
			if resp != "yes" && resp != "y" {
				fmt.Println("Aborted by user.")
				return nil
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot determine home directory: %w", err)
			}
			zfunc := filepath.Join(home, ".zfunc")
			if err := os.MkdirAll(zfunc, 0o755); err != nil {
				return fmt.Errorf("cannot create %s: %w", zfunc, err)
			}
			dest := filepath.Join(zfunc, "_tcx")
			f, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("cannot create completion file %s: %w", dest, err)
			}
			if err := rootCmd.GenZshCompletion(f); err != nil {
				f.Close()
				return fmt.Errorf("failed to generate zsh completion: %w", err)
			}
			f.Close()
			fmt.Printf("Wrote zsh completion to %s\n", dest)

			zshrc := filepath.Join(home, ".zshrc")
			existing, _ := os.ReadFile(zshrc)
			if !strings.Contains(string(existing), ".zfunc") {
				fz, err := os.OpenFile(zshrc, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to update %s: %w", zshrc, err)
				}
				appendLines := "\n# tcx: ensure completion functions directory is in fpath\nfpath=(~/.zfunc $fpath)\n"
				if !strings.Contains(string(existing), "compinit") {
					appendLines += "\n# tcx: ensure compinit is initialized for completion\nautoload -Uz compinit && compinit\n"
				}
				if _, err := fz.WriteString("\n# --- added by `tcx completion --install-zsh` ---\n" + appendLines + "# --- end tcx changes ---\n"); err != nil {
					fz.Close()
					return fmt.Errorf("failed to update %s: %w", zshrc, err)
				}
				fz.Close()
				fmt.Printf("Updated %s\n", zshrc)
			} else {
				fmt.Printf("%s already looks configured; no changes made.\n", zshrc)
			}
			fmt.Println("Installation complete. Restart zsh or run `exec zsh` to enable completion.")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("missing shell argument; expected one of: bash, zsh, fish, powershell (or use --install-zsh)")
		}
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	completionCmd.Flags().BoolVar(&installZsh, "install-zsh", false, "Install zsh completion into ~/.zfunc/_tcx and update ~/.zshrc (requires confirmation)")
	rootCmd.AddCommand(completionCmd)
}
