package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog status",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()

		st, err := s.GetStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
			os.Exit(1)
		}

		var size int64
		if fi, err := os.Stat(st.DBPath); err == nil {
			size = fi.Size()
		}

		fmt.Println("BrickMind Status")
		fmt.Println()
		fmt.Println("Catalog:", st.DBPath)
		fmt.Println("Size:", formatBytes(size))
		fmt.Println()
		fmt.Println("Sets")
		fmt.Printf("  Total:           %d\n", st.SetCount)
		fmt.Printf("  Vectors:         %d embedded\n", st.VectorCount)
		fmt.Printf("  Needs embedding: %d\n", st.NeedsEmbedding)
		fmt.Printf("  Cached answers:  %d\n\n", st.CachedAnswers)

		fmt.Println("Themes")
		if len(st.Themes) == 0 {
			fmt.Println("  Catalog is empty. Run 'brickmind sync' or 'brickmind import' to fill it.")
			return
		}
		for _, t := range st.Themes {
			fmt.Printf("  %s\n", t.Name)
			fmt.Printf("    Sets: %d", t.SetCount)
			if t.LastModified != "" {
				if ago := formatTimeAgo(t.LastModified); ago != "" {
					fmt.Printf(" (updated %s)", ago)
				}
			}
			fmt.Println()
		}
	},
}

func formatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	if n < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	if n < 1024*1024*1024 {
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
	return fmt.Sprintf("%.1f GB", float64(n)/(1024*1024*1024))
}

func formatTimeAgo(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	d := time.Since(t)
	if d < time.Minute {
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
