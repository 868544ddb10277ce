package document

import "html/template"

var pageTemplate = template.Must(template.New("document").Parse(pageSource))

const pageSource = `{{define "help"}}{{with .Help}}<p class="survey-help">{{.}}</p>
{{end}}{{end}}

{{define "field"}}
{{- if eq .Control "group" -}}
<fieldset class="survey-fieldset survey-group">
<legend>{{.Label}}</legend>
{{template "help" .}}{{range .Fields}}{{template "field" .}}{{end -}}
</fieldset>
{{else if eq .Control "one_of" "any_of" -}}
{{$multi := eq .Control "any_of"}}{{$name := .Name -}}
<fieldset class="survey-fieldset survey-{{.Control}}">
<legend>{{.Label}}</legend>
{{template "help" .}}{{range .Options -}}
<div class="survey-option">
<input type="{{if $multi}}checkbox{{else}}radio{{end}}" id="{{.ID}}" name="{{$name}}" value="{{.Value}}"{{if .Checked}} checked{{end}}>
<label for="{{.ID}}">{{.Label}}</label>
{{with .Fields}}<div class="survey-nested">
{{range .}}{{template "field" .}}{{end -}}
</div>
{{end -}}
</div>
{{end -}}
</fieldset>
{{else if eq .Control "checkbox" -}}
<div class="survey-field survey-checkbox">
<input type="checkbox" id="{{.ID}}" name="{{.Name}}" value="true"{{if .Checked}} checked{{end}}>
<label for="{{.ID}}">{{.Label}}</label>
{{template "help" .}}</div>
{{else if eq .Control "textarea" -}}
<div class="survey-field">
<label for="{{.ID}}">{{.Label}}</label>
<textarea id="{{.ID}}" name="{{.Name}}" rows="4">{{.Value}}</textarea>
{{template "help" .}}</div>
{{else -}}
<div class="survey-field">
<label for="{{.ID}}">{{.Label}}</label>
<input type="{{.Type}}" id="{{.ID}}" name="{{.Name}}"{{with .Step}} step="{{.}}"{{end}}{{with .Min}} min="{{.}}"{{end}}{{with .Max}} max="{{.}}"{{end}}{{with .Placeholder}} placeholder="{{.}}"{{end}}{{with .Value}} value="{{.}}"{{end}}>
{{template "help" .}}</div>
{{end}}
{{- end}}

{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{with .Title}}<title>{{.}}</title>
{{end -}}
{{if .Stylesheet}}<link rel="stylesheet" href="{{.Stylesheet}}">
{{else}}<style>
.survey-form { max-width: 40rem; margin: 2rem auto; font-family: system-ui, sans-serif; }
.survey-field, .survey-option { margin: 0.75rem 0; }
.survey-field label { display: block; font-weight: 600; }
.survey-checkbox label { display: inline; }
.survey-field input[type=text], .survey-field input[type=password],
.survey-field input[type=number], .survey-field textarea { width: 100%; padding: 0.4rem; box-sizing: border-box; }
.survey-fieldset { border: 1px solid #ccc; border-radius: 4px; margin: 1rem 0; }
.survey-nested { margin-left: 1.5rem; }
.survey-help { color: #555; font-size: 0.9em; margin: 0.25rem 0; }
</style>
{{end -}}
</head>
<body>
<form class="survey-form">
{{with .Title}}<h1 class="survey-title">{{.}}</h1>
{{end -}}
{{with .Prelude}}<div class="survey-prelude">{{.}}</div>
{{end -}}
<div class="survey-questions">
{{range .Fields}}{{template "field" .}}{{end -}}
</div>
{{with .Epilogue}}<div class="survey-epilogue">{{.}}</div>
{{end -}}
<button type="submit" class="survey-submit">{{.Submit}}</button>
</form>
</body>
</html>
{{end}}`
