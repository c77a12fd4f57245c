package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2e7d32")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	searchInput textinput.Model
	menuInput   textinput.Model
	resultTable table.Model
	spinner     spinner.Model
	client      *ApiClient
	result      *FoodResult
	menuResults []MenuItemResult
	loading     bool
	currentView string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Find Alternatives", desc: "Look up nutritionally similar substitutes for a food"},
		item{title: "Menu Alternatives", desc: "Find substitutes for every item on a menu"},
		item{title: "Settings", desc: "Configure the client"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "WasteNot CLI"

	// Initialize alternatives table
	columns := []table.Column{
		{Title: "Alternative", Width: 45},
		{Title: "Similarity", Width: 12},
	}
	resultTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	// Initialize search input
	search := textinput.New()
	search.Placeholder = "Enter a food name..."
	search.CharLimit = 156
	search.Width = 40

	// Initialize menu input
	menu := textinput.New()
	menu.Placeholder = "Comma-separated menu items..."
	menu.CharLimit = 512
	menu.Width = 60

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		searchInput: search,
		menuInput:   menu,
		resultTable: resultTable,
		spinner:     s,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == "main" {
				return m, tea.Quit
			}
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Find Alternatives":
						m.currentView = "search"
						m.error = ""
						m.result = nil
						m.searchInput.SetValue("")
						m.searchInput.Focus()
					case "Menu Alternatives":
						m.currentView = "menu"
						m.error = ""
						m.menuResults = nil
						m.menuInput.SetValue("")
						m.menuInput.Focus()
					case "Settings":
						m.currentView = "settings"
					}
				}
			} else if m.currentView == "search" {
				query := strings.TrimSpace(m.searchInput.Value())
				if query == "" {
					m.error = "Please enter a food name"
					return m, nil
				}
				m.loading = true
				m.error = ""
				return m, fetchAlternatives(m.client, query)
			} else if m.currentView == "menu" {
				items := parseMenuInput(m.menuInput.Value())
				if len(items) == 0 {
					m.error = "Please enter at least one menu item"
					return m, nil
				}
				m.loading = true
				m.error = ""
				return m, fetchMenuAlternatives(m.client, items)
			} else if m.currentView == "result" {
				m.currentView = "search"
				m.searchInput.Focus()
			}
		case "esc":
			if m.currentView == "result" {
				m.currentView = "search"
				m.searchInput.Focus()
			} else if m.currentView != "main" {
				m.currentView = "main"
			}
		}
	case resultMsg:
		m.loading = false
		m.result = msg.result
		m.resultTable.SetRows(convertAlternativesToRows(msg.result.Alternatives))
		m.currentView = "result"
		return m, nil
	case menuResultMsg:
		m.loading = false
		m.menuResults = msg.results
		m.currentView = "menu_result"
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "search":
		m.searchInput, cmd = m.searchInput.Update(msg)
	case "menu":
		m.menuInput, cmd = m.menuInput.Update(msg)
	case "result":
		m.resultTable, cmd = m.resultTable.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "search":
		help := "\nPress 'enter' to search, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		body := titleStyle.Render("Find Alternatives") + "\n\n" + m.searchInput.View() + help
		if m.loading {
			body += "\n" + m.spinner.View() + " Searching..."
		}
		return docStyle.Render(body)
	case "result":
		return docStyle.Render(resultView(m))
	case "menu":
		help := "\nEnter menu items separated by commas.\nPress 'enter' to search, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		body := titleStyle.Render("Menu Alternatives") + "\n\n" + m.menuInput.View() + help
		if m.loading {
			body += "\n" + m.spinner.View() + " Searching..."
		}
		return docStyle.Render(body)
	case "menu_result":
		return docStyle.Render(menuResultView(m.menuResults))
	case "settings":
		settingsView := titleStyle.Render("Settings") + "\n\n"
		settingsView += infoStyle.Render("Connection:") + "\n"
		settingsView += fmt.Sprintf("• API Server: %s\n", m.client.BaseURL)
		if m.client.UseMock {
			settingsView += errorStyle.Render("Server unreachable, showing mock data") + "\n"
		} else {
			settingsView += successStyle.Render("Server is reachable") + "\n"
		}
		settingsView += "\nSet WASTENOT_API_URL to point at another server.\n"
		settingsView += "Press 'esc' to return to the main menu"
		return docStyle.Render(settingsView)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type resultMsg struct {
	result *FoodResult
}

type menuResultMsg struct {
	results []MenuItemResult
}

type errorMsg struct {
	err string
}

// fetchAlternatives queries the API for one food
func fetchAlternatives(client *ApiClient, foodName string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.FindAlternatives(foodName)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error: %v", err)}
		}
		return resultMsg{result: result}
	}
}

// fetchMenuAlternatives queries the API for a whole menu
func fetchMenuAlternatives(client *ApiClient, items []string) tea.Cmd {
	return func() tea.Msg {
		results, err := client.MenuAlternatives(items)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error: %v", err)}
		}
		return menuResultMsg{results: results}
	}
}

// parseMenuInput splits a comma-separated menu into trimmed items
func parseMenuInput(input string) []string {
	var items []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// convertAlternativesToRows converts API alternatives to table rows
func convertAlternativesToRows(alternatives []Alternative) []table.Row {
	rows := make([]table.Row, len(alternatives))
	for i, alt := range alternatives {
		rows[i] = table.Row{alt.FoodName, alt.Similarity}
	}
	return rows
}

// resultView creates a detailed view of a single result
func resultView(m Model) string {
	result := m.result
	view := titleStyle.Render(fmt.Sprintf("Alternatives for %s", result.InputFood)) + "\n\n"
	view += m.resultTable.View() + "\n\n"

	view += infoStyle.Render("Nutrient profile (normalized):") + "\n"
	names := make([]string, 0, len(result.Nutrients))
	for name := range result.Nutrients {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		view += fmt.Sprintf("  %-35s %6.2f\n", name, result.Nutrients[name])
	}
	if result.NutrientsMessage != "" {
		view += "\n" + result.NutrientsMessage + "\n"
	}

	view += "\nPress 'enter' to search again, 'esc' to go back"
	return view
}

// menuResultView creates a view of a batch result
func menuResultView(results []MenuItemResult) string {
	view := titleStyle.Render("Menu Alternatives") + "\n\n"
	for _, item := range results {
		if item.Error != "" {
			view += fmt.Sprintf("%s: %s\n\n", item.InputFood, errorStyle.Render(item.Error))
			continue
		}
		view += successStyle.Render(item.InputFood) + "\n"
		for i, alt := range item.Alternatives {
			view += fmt.Sprintf("  %d. %s (%s)\n", i+1, alt.FoodName, alt.Similarity)
		}
		view += "\n"
	}
	view += "Press 'esc' to go back"
	return view
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
