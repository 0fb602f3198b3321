package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type FormOpts struct {
	// Title is a bolded text displayed at the top of the form
	Title string

	// Fields declares the inputs to render, in display order
	Fields []gateway.FieldSpec

	// Values optionally seeds the inputs, keyed by field name
	Values map[string]string
}

type formInput struct {
	spec  gateway.FieldSpec
	model textinput.Model
}

type formModel struct {
	title     string
	inputs    []formInput
	focused   int
	cancelled bool
	err       error
}

const formButtonCount = 2 // submit, cancel

// ShowForm renders an interactive form for the provided fields and
// returns the raw entered values keyed by field name; a cancelled form
// returns ErrorUserCancelled and the persisted state is left untouched
func ShowForm(opts FormOpts) (map[string]string, error) {
	model := createForm(opts)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("failed to run the form: %s", err)
	}
	if model.cancelled {
		return nil, ErrorUserCancelled
	}
	values := map[string]string{}
	for _, input := range model.inputs {
		values[input.spec.Name] = input.model.Value()
	}
	return values, nil
}

func createForm(opts FormOpts) *formModel {
	model := &formModel{title: opts.Title}
	for _, field := range opts.Fields {
		inputModel := textinput.New()
		inputModel.Width = 64
		inputModel.PlaceholderStyle = stylePlaceholder
		if value, ok := opts.Values[field.Name]; ok {
			inputModel.SetValue(value)
		} else if field.Default != "" {
			inputModel.SetValue(field.Default)
		}
		validatorOpts := formValidatorOpts{IsRequired: field.Required}
		switch field.Kind {
		case gateway.FieldBoolean:
			inputModel.Validate = getBooleanValidator(validatorOpts)
		case gateway.FieldInteger:
			inputModel.Validate = getIntegerValidator(validatorOpts)
		case gateway.FieldFloat:
			inputModel.Validate = getFloatValidator(validatorOpts)
		case gateway.FieldJson:
			inputModel.Validate = getJsonValidator(validatorOpts)
		case gateway.FieldSecret:
			inputModel.EchoMode = textinput.EchoPassword
			inputModel.EchoCharacter = '*'
			fallthrough
		default:
			inputModel.Validate = getStringValidator(validatorOpts)
		}
		model.inputs = append(model.inputs, formInput{
			spec:  field,
			model: inputModel,
		})
	}
	if len(model.inputs) > 0 {
		model.inputs[0].model.Focus()
	}
	return model
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.focused < len(m.inputs) {
				m.nextInput()
				break
			}
			if m.focused == len(m.inputs)+1 {
				m.cancelled = true
				return m, tea.Quit
			}
			if err := m.validate(); err != nil {
				m.err = err
				break
			}
			return m, tea.Quit
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		}
		for i := range m.inputs {
			m.inputs[i].model.Blur()
		}
		if m.focused < len(m.inputs) {
			m.inputs[m.focused].model.Focus()
		}
	}
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i].model, cmds[i] = m.inputs[i].model.Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *formModel) validate() error {
	for i := range m.inputs {
		input := &m.inputs[i]
		if input.model.Validate == nil {
			continue
		}
		if err := input.model.Validate(input.model.Value()); err != nil {
			m.focused = i
			return fmt.Errorf("field[%s]: %s", input.spec.Name, err)
		}
	}
	return nil
}

func (m *formModel) nextInput() {
	m.focused++
	if m.focused > len(m.inputs)+formButtonCount-1 {
		m.focused = 0
	}
}

func (m *formModel) prevInput() {
	m.focused--
	if m.focused < 0 {
		m.focused = len(m.inputs) + formButtonCount - 1
	}
}

func (m formModel) View() string {
	var message bytes.Buffer
	fmt.Fprintf(&message, "%s\n\n", styleTitle.Render(m.title))
	for i, input := range m.inputs {
		required := ""
		if input.spec.Required {
			required = " (*)"
		}
		label := styleInput.Render(input.spec.Label)
		if i == m.focused {
			label = styleInputFocused.Render(input.spec.Label)
		}
		fmt.Fprintf(&message, "%s%s: %s\n", label, required, input.model.View())
	}
	if m.err != nil {
		fmt.Fprintf(&message, "\n%s\n", styleError.Render(m.err.Error()))
	}
	buttons := []string{
		renderFormButton("Submit", m.focused == len(m.inputs)),
		renderFormButton("Cancel", m.focused == len(m.inputs)+1),
	}
	fmt.Fprintf(&message, "\n%s\n", strings.Join(buttons, "\t"))
	return message.String()
}

func renderFormButton(label string, isSelected bool) string {
	displayStyle := styleInput
	if isSelected {
		displayStyle = styleInputFocused
	}
	return displayStyle.Render(fmt.Sprintf("[ %s ]", label))
}
