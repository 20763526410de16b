package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkgjs/create-package-json/internal/depspec"
	"github.com/pkgjs/create-package-json/internal/prompt"
)

// Questions returns the prompts for the fields not given explicitly in
// in, defaulting each to its value in cfg. The order is fixed.
func Questions(in Input, cfg *Configuration, ws Workspace) []prompt.Question {
	missing := func(v string) func() bool {
		return func() bool { return v == "" }
	}

	return []prompt.Question{{
		Name:     "name",
		Message:  "Package name:",
		Default:  cfg.Name,
		When:     missing(in.Name),
		Validate: validateNameAnswer,
	}, {
		Name:    "version",
		Message: "Version:",
		Default: cfg.Version,
		When:    missing(in.Version),
	}, {
		Name:    "description",
		Message: "Description:",
		Default: cfg.Description,
		When:    missing(in.Description),
	}, {
		Name:    "author",
		Message: "Author:",
		Default: cfg.Author,
		When:    missing(in.Author),
	}, {
		Name:    "repository",
		Message: "Repository:",
		Default: cfg.Repository.URL(),
		When:    func() bool { return in.Repository.IsZero() },
	}, {
		Name:    "keywords",
		Message: "Keywords (ex: blockchain, ninja):",
		Default: cfg.Keywords,
		When:    func() bool { return in.Keywords == nil },
		Filter:  prompt.ListFilter,
	}, {
		Name:    "license",
		Message: "License (ex: MIT, UNLICENSED):",
		Default: cfg.License,
		When:    missing(in.License),
	}, {
		Name:    "workspaceRoot",
		Message: "Workspace root:",
		Default: cfg.WorkspaceRoot,
		When: func() bool {
			return in.WorkspaceRoot == "" && ws.IsMember(cfg.Directory)
		},
	}, {
		Name:    "workspaces",
		Message: "Workspaces (ex: packages/*):",
		Default: cfg.Workspaces,
		When: func() bool {
			return in.Workspaces == nil && !ws.IsMember(cfg.Directory)
		},
		Filter: prompt.ListFilter,
	}, {
		Name:     "type",
		Message:  "Module type (commonjs, module):",
		Default:  cfg.Type,
		When:     missing(in.Type),
		Validate: validateType,
	}, {
		Name:    "main",
		Message: "Entry point (main):",
		Default: cfg.Main,
		When:    missing(in.Main),
	}, {
		Name:     "dependencies",
		Message:  "Dependencies (ex: express, react):",
		Default:  cfg.Dependencies,
		When:     func() bool { return in.Dependencies == nil },
		Filter:   prompt.ListFilter,
		Validate: validateSpecAnswer,
	}, {
		Name:     "devDependencies",
		Message:  "Dev Dependencies (ex: mocha, typescript):",
		Default:  cfg.DevDependencies,
		When:     func() bool { return in.DevDeps == nil },
		Filter:   prompt.ListFilter,
		Validate: validateSpecAnswer,
	}}
}

// lifecycleScripts are offered after the test script, in this order.
var lifecycleScripts = []struct{ name, message string }{
	{"test", "Test script:"},
	{"prepare", "Prepare script (run before publish and on local install):"},
	{"prepublishOnly", "Prepublish script (run only before publish):"},
	{"postpublish", "Postpublish script:"},
	{"preversion", "Preversion script:"},
}

// CollectScripts asks for the test and lifecycle scripts, then loops on
// "Add another script?" until declined. Only non-empty answers are returned.
func CollectScripts(ctx context.Context, p prompt.Prompter, in Input, cfg *Configuration) (map[string]string, error) {
	scripts := map[string]string{}

	questions := make([]prompt.Question, 0, len(lifecycleScripts))
	for _, ls := range lifecycleScripts {
		questions = append(questions, prompt.Question{
			Name:    ls.name,
			Message: ls.message,
			Default: cfg.Scripts[ls.name],
			When:    func() bool { return in.Scripts[ls.name] == "" },
		})
	}
	answers, err := p.Prompt(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("prompting for scripts: %w", err)
	}
	for _, ls := range lifecycleScripts {
		if s, ok := answers.String(ls.name); ok && s != "" {
			scripts[ls.name] = s
		}
	}

	for {
		answers, err := p.Prompt(ctx, []prompt.Question{{
			Name:    "another",
			Message: "Add another script?",
			Kind:    prompt.Confirm,
			Default: false,
		}})
		if err != nil {
			return nil, fmt.Errorf("prompting for scripts: %w", err)
		}
		if another, _ := answers.Bool("another"); !another {
			return scripts, nil
		}

		answers, err = p.Prompt(ctx, []prompt.Question{{
			Name:     "name",
			Message:  "Script name:",
			Validate: requireText("script name"),
		}, {
			Name:    "content",
			Message: "Script content:",
		}})
		if err != nil {
			return nil, fmt.Errorf("prompting for script: %w", err)
		}
		name, _ := answers.String("name")
		content, _ := answers.String("content")
		if name != "" {
			scripts[name] = content
		}
	}
}

func validateNameAnswer(v any) error {
	s, _ := v.(string)
	return ValidateName(s)
}

func validateType(v any) error {
	switch v {
	case "commonjs", "module":
		return nil
	default:
		return fmt.Errorf("type must be commonjs or module, got %v", v)
	}
}

func validateSpecAnswer(v any) error {
	specs, _ := v.([]string)
	return depspec.ValidatePackageSpec(specs)
}

func requireText(what string) func(any) error {
	return func(v any) error {
		if s, _ := v.(string); s == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}
