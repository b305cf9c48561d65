package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"agendai/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	// Release the store file so the snapshot sees a settled database.
	if err := ctx.Store.Close(); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("Calendario salvato in %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Printf("Nessun backup in %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Printf("Backup disponibili (%d, la rotazione ne conserva %d):\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %-32s %.1f KB\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Snapshot to restore, by filename or full path."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := resolveBackupPath(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes && !confirmRestore(backupPath) {
		fmt.Println("Ripristino annullato.")
		return nil
	}

	if err := mgr.Restore(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("Calendario ripristinato.")
	return nil
}

// resolveBackupPath accepts either a bare snapshot filename, looked up in the
// backup directory, or a full path.
func resolveBackupPath(mgr *backup.Manager, name string) (string, error) {
	if !filepath.IsAbs(name) {
		inDir := filepath.Join(mgr.BackupDir(), name)
		if _, err := os.Stat(inDir); err == nil {
			return inDir, nil
		}
	}
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file not found: %s", name)
	}
	return name, nil
}

func confirmRestore(backupPath string) bool {
	fmt.Printf("Il calendario attuale verrà sostituito da %s.\n", filepath.Base(backupPath))
	fmt.Println("Una copia di sicurezza del calendario attuale viene creata prima del ripristino.")
	fmt.Print("Continuare? [s/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "s" || response == "si" || response == "sì" || response == "y" || response == "yes"
}
