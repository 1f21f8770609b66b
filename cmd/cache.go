package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chrisi5700/mtgproxy/internal/config"
	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show the image cache location and size",
	Long: `Cache prints where downloaded card images are stored, along with how
many files the cache holds and their total size. The cache is never
evicted by mtgproxy; remove files manually if you need the space.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		fmt.Println("Cache directory:", cfg.CacheDir)

		if _, err := os.Stat(cfg.CacheDir); os.IsNotExist(err) {
			fmt.Println("The cache is empty (directory does not exist yet).")
			return
		}

		var files int
		var bytes int64
		err = filepath.WalkDir(cfg.CacheDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			files++
			bytes += info.Size()
			return nil
		})
		if err != nil {
			fmt.Printf("Error reading cache: %v\n", err)
			return
		}

		fmt.Printf("Cached images:   %d\n", files)
		fmt.Printf("Total size:      %.1f MiB\n", float64(bytes)/(1024*1024))
	},
}

func init() {
	RootCmd.AddCommand(cacheCmd)
}
