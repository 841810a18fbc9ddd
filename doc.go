// Package m2gimage renders molecule grids to PNG images using headless Chrome.
//
// # Quick Start
//
// Create a service, render a grid of SMILES strings, and close when done:
//
//	svc, err := m2gimage.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Render(ctx, m2gimage.Input{
//	    Items: []m2gimage.Item{
//	        {Smiles: "CCO", Fields: []m2gimage.Field{{Name: "name", Value: "ethanol"}}},
//	        {Smiles: "c1ccccc1"},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("grid.png", result.PNG, 0644)
//
// The result contains both the PNG bytes (result.PNG) and the intermediate
// HTML (result.HTML) for debugging. Use Input.HTMLOnly to skip image capture.
//
// # Render Pipeline
//
// The rendering process follows these stages:
//
//  1. Grid HTML generation from items (html/template)
//  2. CSS composition (page background, grid layout, base stylesheet, user CSS)
//  3. CSS injection into the HTML document
//  4. Structure drawing and PNG capture via headless Chrome (go-rod)
//
// Structures are drawn client-side by the SmilesDrawer library; the capture
// waits until every structure has settled before taking the screenshot.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := m2gimage.New(
//	    m2gimage.WithTimeout(2 * time.Minute),
//	    m2gimage.WithStyle("dark"),
//	    m2gimage.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Per-render options are passed via Input:
//
//	result, err := svc.Render(ctx, m2gimage.Input{
//	    Items: items,
//	    Grid: &m2gimage.GridOptions{
//	        Columns:    8,
//	        CellWidth:  200,
//	        CellHeight: 200,
//	    },
//	    CSS:         ".m2g-caption { color: navy; }",
//	    Transparent: true,
//	})
//
// # Parallel Processing
//
// For batch rendering, use ServicePool to manage multiple browser instances:
//
//	pool := m2gimage.NewServicePool(4)
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(svc)
//	result, err := svc.Render(ctx, input)
//
// # Custom Assets
//
// Override built-in styles and the grid template using AssetLoader:
//
//	loader, err := m2gimage.NewAssetLoader("/path/to/assets")
//	svc, err := m2gimage.New(m2gimage.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── grid.html
//
// # Browser Requirements
//
// Image capture requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, the Chrome sandbox is disabled when
// CI=true or ROD_BROWSER_BIN is set. Use ROD_BROWSER_BIN to point at a
// pre-installed Chrome binary.
package m2gimage
