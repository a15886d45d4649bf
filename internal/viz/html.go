package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "preset", "force", "circle", or "grid"
	Title  string
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout: "preset",
		Title:  "Route Graph",
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"preset", "force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML file for the graph.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(opts.Title), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     opts.Title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "preset", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be preset, force, circle, or grid", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
}

// layoutToCytoscape converts user-facing layout names to Cytoscape.js layout names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	case "force":
		return "cose"
	default:
		return "preset"
	}
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML(title string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(title) + ` - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state { text-align: center; color: #666; }
    .empty-state h2 { margin-bottom: 0.5em; color: #333; }
    .empty-state code { background: #e0e0e0; padding: 2px 6px; border-radius: 3px; }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No cities yet</h2>
    <p>Add routes using <code>routeviz routes add</code></p>
    <p>or load the sample network with <code>routeviz routes sample</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .label { font-weight: bold; margin-bottom: 4px; }
    #tooltip .detail { color: #555; margin: 2px 0; }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        minZoom: 0.1,
        maxZoom: 5,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'border-color': '#ffffff',
              'border-width': 3,
              'label': 'data(label)',
              'color': '#ffffff',
              'font-size': '11px',
              'font-weight': 'bold',
              'text-valign': 'center',
              'text-halign': 'center',
              'width': 60,
              'height': 60
            }
          },
          {
            selector: 'node.active',
            style: {
              'background-color': '#6366f1',
              'border-color': '#4f46e5'
            }
          },
          {
            selector: 'node.visited',
            style: {
              'background-color': '#10b981',
              'border-color': '#047857',
              'border-width': 4
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#cbd5e1',
              'width': 2,
              'label': 'data(label)',
              'font-size': '14px',
              'font-weight': 'bold',
              'color': '#64748b',
              'text-background-color': '#ffffff',
              'text-background-opacity': 1,
              'text-background-padding': '4px'
            }
          },
          {
            selector: 'edge.path',
            style: {
              'line-color': '#6366f1',
              'width': 5,
              'color': '#6366f1'
            }
          },
          {
            selector: '.dimmed',
            style: { 'opacity': 0.25 }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 120
        }
      });

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        const data = evt.target.data();
        showTooltip(evt, '<div class="label">' + escapeHtml(data.label) + '</div>' +
          '<div class="detail">Routes: ' + data.degree + '</div>');
      });

      cy.on('mouseover', 'edge', function(evt) {
        const data = evt.target.data();
        showTooltip(evt, '<div class="label">' + escapeHtml(data.source) + ' ↔ ' +
          escapeHtml(data.target) + '</div><div class="detail">Distance: ' + escapeHtml(data.label) + '</div>');
      });

      cy.on('mouseout', 'node, edge', function() {
        tooltip.style.display = 'none';
      });

      cy.on('tap', 'node', function(evt) {
        cy.elements().removeClass('dimmed');
        const neighborhood = evt.target.closedNeighborhood();
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
