package report

var plainTemplates = map[Kind]string{
	KindSolve: `{{ .Equation }}
  {{ .Formula }}
{{ range .Inputs }}  {{ pad .Label $.Width }} = {{ num .Value }} {{ .Unit }}
{{ end }}  {{ pad .Result.Label .Width }} = {{ num .Result.Value }} {{ .Result.Unit }}
{{ range .Notes }}  note: {{ . }}
{{ end }}`,

	KindNetIonic: `Molecular:   {{ .Molecular }}
Total ionic: {{ .TotalIonic }}
{{- if .Spectators }}
Spectators:  {{ range $i, $s := .Spectators }}{{ if $i }}, {{ end }}{{ if ne $s.Count 1 }}{{ $s.Count }} {{ end }}{{ $s.Key }}{{ end }}
{{- end }}
Net ionic:   {{ . }}
{{- if and .Dissociated (not .NoReaction) (not .Balanced) }}
(no unique balance; counts shown as cancelled)
{{- end }}`,

	KindICE: `{{ .Equation }}   K = {{ num .K }}
  {{ pad "Species" .Width }}  {{ printf "%14s" "Initial" }}  {{ printf "%14s" "Change" }}  {{ printf "%14s" "Equilibrium" }}
{{ range .Rows }}  {{ pad .Species $.Width }}  {{ printf "%14s" (num .Initial) }}  {{ printf "%14s" (num .Change) }}  {{ printf "%14s" (num .Equilibrium) }}
{{ end }}  x = {{ num .Extent }}, Q = {{ num .Q }} ({{ .Direction }})
{{- if not .Bracketed }}
  no exact root found; closest grid point shown
{{- end }}`,

	KindThermo: `{{ .Equation }}
{{- if .HasH }}
  ΔH°rxn = {{ num .DeltaH }} kJ/mol
{{- end }}
{{- if .HasG }}
  ΔG°rxn = {{ num .DeltaG }} kJ/mol
{{- end }}
{{- if .HasS }}
  ΔS°rxn = {{ num .DeltaS }} J/(mol·K)
{{- end }}
{{- range .Missing }}
  missing: {{ . }}
{{- end }}`,

	KindHeating: `{{ .Name }}, {{ num .Mass }} kg
{{ range .Curve.Segments }}{{ if .Transition }}  {{ printf "%-13s" .Phase }} at {{ num .T1 }} °C{{ else }}  {{ printf "%-13s" .Phase }} {{ num .T1 }} → {{ num .T2 }} °C{{ end }}: {{ num .Q }} J
{{ end }}  total: {{ num .Curve.Total }} J`,

	KindMass: `{{ .Formula }}{{ if ne .Query .Formula }} ({{ .Query }}){{ end }}: {{ num .Total }} g/mol
{{ range .Composition }}  {{ printf "%-3s" .Symbol }} ×{{ .Count }}  {{ num .Mass }} g/mol  {{ pct .Fraction }}
{{ end }}`,
}

var markdownTemplates = map[Kind]string{
	KindSolve: `### {{ .Equation }}

` + "`{{ .Formula }}`" + `

| Variable | Value | Unit |
|---|---|---|
{{ range .Inputs }}| {{ .Label }} | {{ num .Value }} | {{ .Unit }} |
{{ end }}| **{{ .Result.Label }}** | **{{ num .Result.Value }}** | {{ .Result.Unit }} |
{{ range .Notes }}
> {{ . }}
{{ end }}`,

	KindNetIonic: `- Molecular: ` + "`{{ .Molecular }}`" + `
- Total ionic: ` + "`{{ .TotalIonic }}`" + `
- Net ionic: ` + "`{{ . }}`",

	KindICE: `### {{ .Equation }} (K = {{ num .K }})

| Species | Initial | Change | Equilibrium |
|---|---|---|---|
{{ range .Rows }}| {{ .Species }} | {{ num .Initial }} | {{ num .Change }} | {{ num .Equilibrium }} |
{{ end }}
x = {{ num .Extent }}, Q = {{ num .Q }} ({{ .Direction }})`,

	KindThermo: `### {{ .Equation }}

| Quantity | Value |
|---|---|
{{ if .HasH }}| ΔH°rxn | {{ num .DeltaH }} kJ/mol |
{{ end }}{{ if .HasG }}| ΔG°rxn | {{ num .DeltaG }} kJ/mol |
{{ end }}{{ if .HasS }}| ΔS°rxn | {{ num .DeltaS }} J/(mol·K) |
{{ end }}{{ range .Missing }}
- missing: {{ . }}{{ end }}`,

	KindHeating: `### {{ .Name }}, {{ num .Mass }} kg

| Step | From (°C) | To (°C) | Q (J) |
|---|---|---|---|
{{ range .Curve.Segments }}| {{ .Phase }} | {{ num .T1 }} | {{ num .T2 }} | {{ num .Q }} |
{{ end }}| **total** | | | **{{ num .Curve.Total }}** |`,

	KindMass: `### {{ .Formula }}: {{ num .Total }} g/mol

| Element | Count | Mass (g/mol) | Mass % |
|---|---|---|---|
{{ range .Composition }}| {{ .Symbol }} | {{ .Count }} | {{ num .Mass }} | {{ pct .Fraction }} |
{{ end }}`,
}
