package main

import (
	"bufio"
	"bytes"
	"fmt"
	"text/template"

	"github.com/ghodss/yaml"
	"github.com/mxpv/pbrt4"
)

func export(scene *pbrt4.Scene, format string) (string, error) {
	switch format {
	case "json":
		return pbrt4.Pretty(scene), nil
	case "yaml":
		data, err := yaml.Marshal(scene)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "summary":
		return summarize(scene)
	}
	return "", fmt.Errorf("unknown output format: %q", format)
}

const summaryTemplate = `{{with .Camera}}Camera: {{.Camera.Type}}
{{end -}}
{{with .Film}}Film: {{.Type}} {{.XResolution}}x{{.YResolution}} -> {{.Filename}}
{{end -}}
{{with .Sampler}}Sampler: {{.Type}}
{{end -}}
{{with .Integrator}}Integrator: {{.Type}}
{{end -}}
{{with .Accelerator}}Accelerator: {{.Type}}
{{end -}}
{{range .Textures}}Texture: {{.Name}} ({{.Class}})
{{end -}}
{{range .Materials}}Material: {{describe .}}
{{end -}}
{{range .Lights}}Light: {{.Light.Type}}
{{end -}}
{{range .AreaLights}}AreaLight: {{.Type}}
{{end -}}
{{range .Mediums}}Medium: {{.Name}} ({{.Medium.Type}})
{{end -}}
{{range .Shapes}}Shape: {{.Shape.Type}}
{{end -}}
{{len .Shapes}} shapes, {{len .Lights}} lights, {{len .Materials}} materials`

func summarize(scene *pbrt4.Scene) (string, error) {
	funcMap := template.FuncMap{
		"describe": func(m pbrt4.MaterialEntity) string {
			ty := m.Material.Type
			if ty == "" {
				ty = "interface"
			}
			if m.Name != "" {
				return fmt.Sprintf("%q (%s)", m.Name, ty)
			}
			return ty
		},
	}
	tmpl, err := template.New("summary").Funcs(funcMap).Parse(summaryTemplate)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	writer := bufio.NewWriter(&b)
	if err := tmpl.Execute(writer, scene); err != nil {
		return "", err
	}
	writer.Flush()
	return b.String(), nil
}
