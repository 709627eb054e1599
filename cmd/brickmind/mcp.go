package main

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/brickmind/brickmind/internal/assistant"
	"github.com/brickmind/brickmind/internal/llm"
	"github.com/brickmind/brickmind/internal/store"
)

const (
	brickmindGuideTitle = "BrickMind Query Guide"
	brickmindGuideBody  = `# BrickMind - LEGO Catalog Assistant

BrickMind is a local LEGO set catalog with keyword, semantic and hybrid
search, plus an LLM assistant for collector questions.

## Available Tools

### 1. search (Fast keyword search)
Best for: Finding sets by name, theme or description keywords.
- Uses BM25 full-text search
- Fast, no LLM required
- Use ` + "`theme`" + ` parameter to filter to one theme

### 2. vsearch (Semantic search)
Best for: Finding conceptually related sets without exact keyword matches.
- Uses vector embeddings
- Good for "sets like..." or descriptive queries
- Requires embeddings (run 'brickmind embed' first)

### 3. query (Hybrid search - highest quality)
Best for: Important searches where you want the best results.
- Combines keyword + semantic search with RRF

### 4. ask (Assistant answer)
Best for: Open collector questions ("what's the biggest Star Wars set?").
- Combines the catalog, the vector index and live provider data
- Answers with the configured LLM; answers are cached

### 5. get_set (Retrieve one set)
Best for: Full details of a single set by its id (e.g. 75192-1).

### 6. status (Catalog info)
Shows set counts, themes and embedding coverage.

## Resources

Read a set directly via the ` + "`brickmind://`" + ` URI scheme:
- ` + "`resources/read`" + ` with uri ` + "`brickmind://sets/75192-1`" + `

## Tips

- Set ids follow the Brickset convention: number-variant (75192-1)
- Use ` + "`minScore: 0.5`" + ` to filter low-relevance results
- Use ` + "`theme: \"Star Wars\"`" + ` to narrow keyword searches`
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server (stdio)",
	Long:  "Start the Model Context Protocol server for BrickMind. Exposes catalog search, the assistant, and set resources over stdio.",
	RunE:  runMCPServer,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	server := mcp.NewServer(&mcp.Implementation{Name: "brickmind", Version: "1.0.0"}, nil)

	server.AddResourceTemplate(&mcp.ResourceTemplate{URITemplate: "brickmind://sets/{id}"}, setResourceHandler(s))
	server.AddPrompt(&mcp.Prompt{
		Name:        "query",
		Description: "How to effectively search the LEGO catalog with BrickMind",
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: brickmindGuideTitle,
			Messages:    []*mcp.PromptMessage{{Role: "user", Content: &mcp.TextContent{Text: brickmindGuideBody}}},
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Fast keyword-based full-text search over the LEGO catalog using BM25.",
	}, searchTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "vsearch",
		Description: "Semantic similarity search using vector embeddings. Requires embeddings (run 'brickmind embed' first).",
	}, vsearchTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Hybrid search combining BM25 and vector search with RRF. Best quality when embeddings exist.",
	}, queryTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a collector question with the LLM, grounded on the catalog and live provider data.",
	}, askTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_set",
		Description: "Retrieve the full record of one LEGO set by its id (e.g. 75192-1).",
	}, getSetTool(s))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show catalog status: set counts, themes and embedding coverage.",
	}, statusTool(s))

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

func setResourceHandler(s *store.Store) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		if !strings.HasPrefix(uri, "brickmind://sets/") {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		id := strings.TrimPrefix(uri, "brickmind://sets/")
		set, err := s.GetSet(id)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		raw, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: "application/json", Text: string(raw)}},
		}, nil
	}
}

func structuredSet(r SetOutputRow) map[string]any {
	m := map[string]any{
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
	if r.HasScore {
		m["score"] = roundScore(r.Score)
	}
	return m
}

func formatSetSummary(rows []SetOutputRow, query string) string {
	if len(rows) == 0 {
		return "No results found for \"" + query + "\""
	}
	var b strings.Builder
	b.WriteString("Found ")
	b.WriteString(strconv.Itoa(len(rows)))
	b.WriteString(" result(s) for \"")
	b.WriteString(query)
	b.WriteString("\":\n\n")
	for _, r := range rows {
		b.WriteString(r.SetID)
		if r.HasScore {
			b.WriteString(" ")
			b.WriteString(strconv.FormatFloat(r.Score*100, 'f', 0, 64))
			b.WriteString("%")
		}
		b.WriteString(" ")
		b.WriteString(r.Name)
		b.WriteString(" - ")
		b.WriteString(r.Theme)
		b.WriteString("\n")
	}
	return b.String()
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}, IsError: true}
}

func toolRows(rows []SetOutputRow, query string) *mcp.CallToolResult {
	structured := make([]map[string]any, len(rows))
	for i, r := range rows {
		structured[i] = structuredSet(r)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: formatSetSummary(rows, query)}},
		StructuredContent: map[string]any{"results": structured},
	}
}

type searchArgs struct {
	Query    string  `json:"query" jsonschema:"required,description=Search query - keywords or phrases to find"`
	Limit    int     `json:"limit" jsonschema:"description=Maximum number of results (default 10)"`
	MinScore float64 `json:"minScore" jsonschema:"description=Minimum relevance score 0-1 (default 0)"`
	Theme    string  `json:"theme" jsonschema:"description=Filter to a specific theme by name"`
}

func searchTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, searchArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		results, err := s.SearchFTS(args.Query, limit, args.Theme)
		if err != nil {
			return toolError("Search failed: " + err.Error()), nil, nil
		}
		var rows []SetOutputRow
		for _, r := range results {
			if r.Score < args.MinScore {
				continue
			}
			row := rowFromSet(r.Set)
			row.Score = r.Score
			row.HasScore = true
			rows = append(rows, row)
		}
		return toolRows(rows, args.Query), nil, nil
	}
}

type vsearchArgs struct {
	Query    string  `json:"query" jsonschema:"required,description=Natural language query"`
	Limit    int     `json:"limit" jsonschema:"description=Maximum number of results (default 10)"`
	MinScore float64 `json:"minScore" jsonschema:"description=Minimum relevance score 0-1 (default 0.3)"`
}

func vsearchTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, vsearchArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args vsearchArgs) (*mcp.CallToolResult, any, error) {
		if !s.HasVectors() {
			return toolError("Vector index is empty. Run 'brickmind embed' first to create embeddings."), nil, nil
		}
		client := newLLMClient(loadConfig())
		emb, err := client.Embed(ctx, args.Query)
		if err != nil {
			return toolError("Embedding failed: " + err.Error()), nil, nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		results, err := s.SearchVectorsBrute(emb.Embedding, limit)
		if err != nil {
			return toolError("Vector search failed: " + err.Error()), nil, nil
		}
		var rows []SetOutputRow
		for _, r := range results {
			if r.Score < args.MinScore {
				continue
			}
			row := rowFromSet(r.Set)
			row.Score = r.Score
			row.HasScore = true
			rows = append(rows, row)
		}
		return toolRows(rows, args.Query), nil, nil
	}
}

type queryArgs struct {
	Query    string  `json:"query" jsonschema:"required,description=Natural language query"`
	Limit    int     `json:"limit" jsonschema:"description=Maximum number of results (default 10)"`
	MinScore float64 `json:"minScore" jsonschema:"description=Minimum relevance score 0-1"`
	Theme    string  `json:"theme" jsonschema:"description=Filter keyword results to a specific theme"`
}

func queryTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, queryArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args queryArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		fetchLimit := limit * 4
		if fetchLimit < 20 {
			fetchLimit = 20
		}
		ftsResults, err := s.SearchFTS(args.Query, fetchLimit, args.Theme)
		if err != nil {
			return toolError("Search failed: " + err.Error()), nil, nil
		}
		var vecResults []store.VecSearchResult
		if s.HasVectors() {
			client := newLLMClient(loadConfig())
			if emb, err := client.Embed(ctx, args.Query); err == nil {
				vecResults, _ = s.SearchVectorsBrute(emb.Embedding, fetchLimit)
			}
		}
		merged := reciprocalRankFusion(ftsResults, vecResults, limit)
		var rows []SetOutputRow
		for _, r := range merged {
			if r.Score < args.MinScore {
				continue
			}
			row := rowFromSet(r.Set)
			row.Score = r.Score
			row.HasScore = true
			rows = append(rows, row)
		}
		return toolRows(rows, args.Query), nil, nil
	}
}

type askArgs struct {
	Question string `json:"question" jsonschema:"required,description=A collector question in natural language"`
	NoAPI    bool   `json:"noApi" jsonschema:"description=Skip live provider lookups and answer from the local catalog only"`
}

func askTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, askArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args askArgs) (*mcp.CallToolResult, any, error) {
		cfg := loadConfig()
		client := newLLMClient(cfg)
		var api assistant.LiveSearcher
		if !args.NoAPI {
			if agg := newAggregator(cfg, nil); agg != nil {
				api = agg
			}
		}
		a := assistant.New(s, client, api, cfg, llm.ChatModel(cfg.ChatModel), nil)
		answer, err := a.Ask(ctx, args.Question)
		if err != nil {
			return toolError("Ask failed: " + err.Error()), nil, nil
		}
		structured := make([]map[string]any, len(answer.Sets))
		for i, set := range answer.Sets {
			structured[i] = structuredSet(rowFromSet(set))
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: answer.Response}},
			StructuredContent: map[string]any{
				"sets":   structured,
				"cached": answer.Cached,
			},
		}, nil, nil
	}
}

type getSetArgs struct {
	ID string `json:"id" jsonschema:"required,description=Set id (e.g. 75192-1)"`
}

func getSetTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, getSetArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args getSetArgs) (*mcp.CallToolResult, any, error) {
		set, err := s.GetSet(args.ID)
		if err != nil {
			return toolError("Set not found: " + args.ID), nil, nil
		}
		raw, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return toolError("Encoding failed: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(raw)}},
			StructuredContent: structuredSet(rowFromSet(*set)),
		}, nil, nil
	}
}

func statusTool(s *store.Store) func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		st, err := s.GetStatus()
		if err != nil {
			return toolError("Failed to get status: " + err.Error()), nil, nil
		}
		lines := []string{
			"BrickMind Catalog Status:",
			"  Total sets: " + strconv.Itoa(st.SetCount),
			"  Vectors: " + strconv.Itoa(st.VectorCount),
			"  Needs embedding: " + strconv.Itoa(st.NeedsEmbedding),
			"  Cached answers: " + strconv.Itoa(st.CachedAnswers),
			"  Themes: " + strconv.Itoa(len(st.Themes)),
		}
		for _, t := range st.Themes {
			lines = append(lines, "    - "+t.Name+" ("+strconv.Itoa(t.SetCount)+" sets)")
		}
		structured := map[string]any{
			"totalSets":      st.SetCount,
			"vectors":        st.VectorCount,
			"needsEmbedding": st.NeedsEmbedding,
			"cachedAnswers":  st.CachedAnswers,
			"themes":         st.Themes,
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: strings.Join(lines, "\n")}},
			StructuredContent: structured,
		}, nil, nil
	}
}
