package mcp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"

	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/pkg/errors"
)

// ServerCommand is how to launch an MCP server speaking over stdio.
type ServerCommand struct {
	Command string
	Args    []string
	Env     map[string]string
}

// RemoteTool is a tool as advertised by a connected server.
type RemoteTool struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Parameters  Parameters `yaml:"parameters"`
}

type Parameters struct {
	Type       string              `yaml:"type,omitempty"`
	Properties map[string]Property `yaml:"properties,omitempty"`
	Required   []string            `yaml:"required,omitempty"`
}

type Property struct {
	Type        string              `yaml:"type,omitempty"`
	Description string              `yaml:"description,omitempty"`
	Enum        []string            `yaml:"enum,omitempty"`
	Default     interface{}         `yaml:"default,omitempty"`
	Items       *Property           `yaml:"items,omitempty"`
	Properties  map[string]Property `yaml:"properties,omitempty"`
	Required    []string            `yaml:"required,omitempty"`
}

// Client drives a single MCP server child process.
type Client struct {
	server ServerCommand
	client *mcp_golang.Client
	cmd    *exec.Cmd
	tools  map[string]RemoteTool
	mu     sync.RWMutex
}

func NewClient(server ServerCommand) *Client {
	return &Client{
		server: server,
		tools:  make(map[string]RemoteTool),
	}
}

// Connect starts the server, performs the protocol handshake and loads the
// advertised tools.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return errors.New("client already connected")
	}

	cmd := exec.Command(c.server.Command, c.server.Args...)
	cmd.Env = os.Environ()
	for k, v := range c.server.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start server")
	}

	transport := stdio.NewStdioServerTransportWithIO(stdout, stdin)
	client := mcp_golang.NewClient(transport)

	if _, err := client.Initialize(ctx); err != nil {
		_ = cmd.Process.Kill()
		return errors.Wrap(err, "failed to initialize client")
	}

	tools, err := listTools(ctx, client)
	if err != nil {
		_ = cmd.Process.Kill()
		return err
	}

	c.client = client
	c.cmd = cmd
	c.tools = tools
	return nil
}

func listTools(ctx context.Context, client *mcp_golang.Client) (map[string]RemoteTool, error) {
	tools := make(map[string]RemoteTool)

	var cursor *string
	for {
		response, err := client.ListTools(ctx, cursor)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list tools")
		}

		for _, remote := range response.Tools {
			description := ""
			if remote.Description != nil {
				description = *remote.Description
			}

			var params Parameters
			if schema, ok := remote.InputSchema.(map[string]interface{}); ok {
				params = parseSchema(schema)
			}

			tools[remote.Name] = RemoteTool{
				Name:        remote.Name,
				Description: description,
				Parameters:  params,
			}
		}

		if response.NextCursor == nil || *response.NextCursor == "" {
			return tools, nil
		}
		cursor = response.NextCursor
	}
}

func parseSchema(schema map[string]interface{}) Parameters {
	params := Parameters{
		Properties: make(map[string]Property),
	}

	if t, ok := schema["type"].(string); ok {
		params.Type = t
	}
	params.Required = stringList(schema["required"])

	if props, ok := schema["properties"].(map[string]interface{}); ok {
		for name, prop := range props {
			if propMap, ok := prop.(map[string]interface{}); ok {
				params.Properties[name] = parseProperty(propMap)
			}
		}
	}

	return params
}

func parseProperty(propMap map[string]interface{}) Property {
	property := Property{
		Enum:     stringList(propMap["enum"]),
		Required: stringList(propMap["required"]),
		Default:  propMap["default"],
	}

	if t, ok := propMap["type"].(string); ok {
		property.Type = t
	}
	if desc, ok := propMap["description"].(string); ok {
		property.Description = desc
	}

	if items, ok := propMap["items"].(map[string]interface{}); ok {
		itemsProp := parseProperty(items)
		property.Items = &itemsProp
	}

	if props, ok := propMap["properties"].(map[string]interface{}); ok {
		property.Properties = make(map[string]Property)
		for name, p := range props {
			if pMap, ok := p.(map[string]interface{}); ok {
				property.Properties[name] = parseProperty(pMap)
			}
		}
	}

	return property
}

func stringList(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Tools returns the advertised tools sorted by name.
func (c *Client) Tools() []RemoteTool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tools := make([]RemoteTool, 0, len(c.tools))
	for _, t := range c.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// CallTool invokes name and returns the text of each content block.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]interface{}) ([]string, error) {
	c.mu.RLock()
	client := c.client
	_, known := c.tools[name]
	c.mu.RUnlock()

	if client == nil {
		return nil, errors.New("client not connected")
	}
	if !known {
		return nil, fmt.Errorf("server has no tool %q", name)
	}

	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	response, err := client.CallTool(ctx, name, arguments)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", name)
	}

	var texts []string
	for _, content := range response.Content {
		if content != nil && content.TextContent != nil {
			texts = append(texts, content.TextContent.Text)
		}
	}
	return texts, nil
}

// Close stops the server process.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd == nil || c.cmd.Process == nil {
		return nil
	}
	err := c.cmd.Process.Kill()
	_ = c.cmd.Wait()

	c.cmd = nil
	c.client = nil
	c.tools = make(map[string]RemoteTool)
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return errors.Wrap(err, "failed to stop server")
	}
	return nil
}
