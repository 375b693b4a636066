package tlplugin

import (
	"context"

	"oss.terrastruct.com/tailor/tlir"
)

var FormsPlugin = formsPlugin{}

func init() {
	plugins = append(plugins, FormsPlugin)
}

type formsPlugin struct{}

func (p formsPlugin) Info(context.Context) (*PluginInfo, error) {
	return bundledInfo("forms",
		"A basic reset for form styles",
		`forms resets native form controls so they are easy to override with utilities.
It contributes a form-* class for each control.`,
		"@tailwindcss/forms",
	), nil
}

func (p formsPlugin) Utilities(context.Context, *tlir.Map) ([]string, error) {
	return []string{
		"form-input",
		"form-textarea",
		"form-select",
		"form-multiselect",
		"form-checkbox",
		"form-radio",
	}, nil
}
