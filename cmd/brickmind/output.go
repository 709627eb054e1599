package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/catalog"
)

// SetOutputRow is one row for set output (all formats).
type SetOutputRow struct {
	SetID       string
	Name        string
	Theme       string
	Pieces      int
	Price       *float64
	Year        *int
	Description string
	Score       float64
	HasScore    bool
	Note        string
}

func rowFromSet(s catalog.Set) SetOutputRow {
	return SetOutputRow{
		SetID:       s.SetID,
		Name:        s.Name,
		Theme:       s.Theme,
		Pieces:      s.PieceCount,
		Price:       s.Price,
		Year:        s.ReleaseYear,
		Description: s.Description,
	}
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return strings.ReplaceAll(s, "'", "&apos;")
}

func priceStr(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

func yearStr(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

// WriteSetOutput writes set rows in the requested format.
func WriteSetOutput(rows []SetOutputRow, format string) {
	switch format {
	case "json":
		out := make([]map[string]interface{}, 0, len(rows))
		for _, r := range rows {
			m := map[string]interface{}{
				"set_id": r.SetID,
				"name":   r.Name,
				"theme":  r.Theme,
				"pieces": r.Pieces,
			}
			if r.Year != nil {
				m["year"] = *r.Year
			}
			if r.Price != nil {
				m["price"] = *r.Price
			}
			if r.Description != "" {
				m["description"] = r.Description
			}
			if r.HasScore {
				m["score"] = roundScore(r.Score)
			}
			if r.Note != "" {
				m["note"] = r.Note
			}
			out = append(out, m)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	case "csv":
		w := csv.NewWriter(os.Stdout)
		_ = w.Write([]string{"set_id", "name", "theme", "pieces", "year", "price", "score", "description"})
		for _, r := range rows {
			score := ""
			if r.HasScore {
				score = strconv.FormatFloat(r.Score, 'f', 4, 64)
			}
			_ = w.Write([]string{
				r.SetID, r.Name, r.Theme,
				strconv.Itoa(r.Pieces), yearStr(r.Year), priceStr(r.Price),
				score, r.Description,
			})
		}
		w.Flush()
	case "md":
		for _, r := range rows {
			fmt.Println("---")
			fmt.Printf("# %s (%s)\n\n", r.Name, r.SetID)
			fmt.Printf("**theme:** %s\n", r.Theme)
			fmt.Printf("**pieces:** %d\n", r.Pieces)
			if r.Year != nil {
				fmt.Printf("**year:** %d\n", *r.Year)
			}
			if r.Price != nil {
				fmt.Printf("**price:** $%.2f\n", *r.Price)
			}
			if r.Note != "" {
				fmt.Printf("**note:** %s\n", r.Note)
			}
			if r.Description != "" {
				fmt.Println()
				fmt.Println(r.Description)
			}
			fmt.Println()
		}
	case "xml":
		fmt.Println(`<?xml version="1.0" encoding="UTF-8"?>`)
		fmt.Println("<sets>")
		for _, r := range rows {
			fmt.Println("  <set>")
			fmt.Printf("    <id>%s</id>\n", escapeXML(r.SetID))
			fmt.Printf("    <name>%s</name>\n", escapeXML(r.Name))
			fmt.Printf("    <theme>%s</theme>\n", escapeXML(r.Theme))
			fmt.Printf("    <pieces>%d</pieces>\n", r.Pieces)
			if r.Year != nil {
				fmt.Printf("    <year>%d</year>\n", *r.Year)
			}
			if r.Price != nil {
				fmt.Printf("    <price>%.2f</price>\n", *r.Price)
			}
			if r.HasScore {
				fmt.Printf("    <score>%.4f</score>\n", r.Score)
			}
			if r.Description != "" {
				fmt.Printf("    <description>%s</description>\n", escapeXML(r.Description))
			}
			fmt.Println("  </set>")
		}
		fmt.Println("</sets>")
	default:
		for _, r := range rows {
			fmt.Printf("%s  %s\n", r.SetID, r.Name)
			fmt.Printf("Theme: %s", r.Theme)
			if r.Year != nil {
				fmt.Printf("  Year: %d", *r.Year)
			}
			fmt.Println()
			fmt.Printf("Pieces: %d", r.Pieces)
			if r.Price != nil {
				fmt.Printf("  Price: $%.2f", *r.Price)
			}
			fmt.Println()
			if r.HasScore {
				fmt.Printf("Score: %.0f%%\n", r.Score*100)
			}
			if r.Note != "" {
				fmt.Println("Note:", r.Note)
			}
			if r.Description != "" {
				fmt.Println(r.Description)
			}
			fmt.Println()
		}
	}
}

func roundScore(s float64) float64 {
	return float64(int(s*100+0.5)) / 100
}

func getFormatFlag(cmd *cobra.Command) string {
	if ok, _ := cmd.Flags().GetBool("json"); ok {
		return "json"
	}
	if ok, _ := cmd.Flags().GetBool("csv"); ok {
		return "csv"
	}
	if ok, _ := cmd.Flags().GetBool("md"); ok {
		return "md"
	}
	if ok, _ := cmd.Flags().GetBool("xml"); ok {
		return "xml"
	}
	s, _ := cmd.Flags().GetString("format")
	if s == "" {
		return "cli"
	}
	return s
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "cli", "Output: cli, json, csv, md, xml")
	cmd.Flags().Bool("json", false, "JSON output (short for --format=json)")
	cmd.Flags().Bool("csv", false, "CSV output")
	cmd.Flags().Bool("md", false, "Markdown output")
	cmd.Flags().Bool("xml", false, "XML output")
}
