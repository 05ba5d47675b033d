package tmpl

// ProjectTemplates is the bundled template set written by the create
// command. Substitution keys come from the finalized interview answers.
func ProjectTemplates() []Descriptor {
	return []Descriptor{
		{
			Path: "sprout-project.json",
			Body: `{
  "projectName": "{{.projectName}}",
  "gitRemoteUri": "{{.gitRemoteUri}}",
  "hubAlias": "{{.hubAlias}}",
  "namespacePrefix": "{{.namespacePrefix}}",
  "hasPackage": {{.isCreatingPackage}}
}
`,
		},
		{
			Path: "README.md",
			Body: `# {{.projectName}}

Scaffolded with sprout.
{{if .isCreatingPackage}}
Package namespace: {{.namespacePrefix}}
{{end}}`,
		},
		{
			Path: ".gitignore",
			Body: `# local tooling
*.log
.sprout/
`,
		},
	}
}
