package tui

import "github.com/charmbracelet/lipgloss"

// View renders the TUI interface
func (m Model) View() string {
	return m.renderFourPanelView()
}

// renderFourPanelView renders the four-panel grid layout
func (m Model) renderFourPanelView() string {
	// 60% left, 40% right for columns
	// 60% top, 40% bottom for rows
	leftWidth := int(float64(m.width) * 0.6)
	rightWidth := m.width - leftWidth

	topHeight := int(float64(m.height) * 0.6)
	bottomHeight := m.height - topHeight

	topLeftPanel := m.renderLogPanel(leftWidth, topHeight)
	topRightPanel := m.renderFormPanel(rightWidth, topHeight)
	bottomLeftPanel := m.renderAlertsPanel(leftWidth, bottomHeight)
	bottomRightPanel := m.renderStatusPanel(rightWidth, bottomHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, topLeftPanel, topRightPanel)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, bottomLeftPanel, bottomRightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
}

// panelBorder picks the border style based on focus
func (m Model) panelBorder(p Panel) lipgloss.Style {
	if m.focusedPanel == p {
		return focusedPanelStyle
	}
	return panelStyle
}
