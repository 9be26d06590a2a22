package email

// PreviewData holds sample data for every template, used to render
// previews and to check that each template executes.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"CompanyName": "Acme",
	},
}
