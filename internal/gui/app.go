package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/glossarymaker/internal"
	"codeberg.org/snonux/glossarymaker/internal/archive"
	"codeberg.org/snonux/glossarymaker/internal/config"
	"codeberg.org/snonux/glossarymaker/internal/logging"
	"codeberg.org/snonux/glossarymaker/internal/pipeline"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// Settings form
	rawsEntry      *widget.Entry
	referenceEntry *widget.Entry
	outputEntry    *widget.Entry
	genreSelect    *widget.Select
	providerSelect *widget.Select

	localCheck      *widget.Check
	hanjaIDCheck    *widget.Check
	guessHanjaCheck *widget.Check
	categorizeCheck *widget.Check
	translateCheck  *widget.Check
	chineseCheck    *widget.Check

	chaptersEntry        *NumericEntry
	categorizeBatchEntry *NumericEntry
	translateBatchEntry  *NumericEntry
	hanjaBatchEntry      *NumericEntry

	// Status and actions
	credentialLabel *widget.Label
	statusLabel     *widget.Label
	runButton       *ttwidget.Button
	cancelButton    *ttwidget.Button
	archiveButton   *ttwidget.Button
	helpButton      *ttwidget.Button
	logViewer       *LogViewer

	config *config.Config
	runner *Runner

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	lastSummary *pipeline.Summary
}

// New creates a new GUI application for cfg
func New(cfg *config.Config) *Application {
	if cfg == nil {
		cfg = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.glossarymaker")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    myApp,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	a.runner = NewRunner(a.onRunStatus)

	a.setupUI()
	a.loadSettings(SettingsFrom(cfg))
	a.refreshCredential()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("glossarymaker v%s - Korean Novel Glossary Builder", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(860, 760))

	a.rawsEntry = widget.NewEntry()
	a.rawsEntry.SetPlaceHolder("Folder with 1.txt, 2.txt, ...")
	a.referenceEntry = widget.NewEntry()
	a.referenceEntry.SetPlaceHolder("Optional reference glossary (.xlsx or .txt)")
	a.outputEntry = widget.NewEntry()
	a.outputEntry.SetPlaceHolder("glossary.xlsx")

	a.genreSelect = widget.NewSelect(GenreOptions(a.config), nil)
	a.providerSelect = widget.NewSelect(ProviderOptions(), func(string) { a.refreshCredential() })

	a.localCheck = widget.NewCheck("Use local model", func(bool) { a.refreshCredential() })
	a.hanjaIDCheck = widget.NewCheck("Identify written hanja", nil)
	a.guessHanjaCheck = widget.NewCheck("Guess hanja", nil)
	a.categorizeCheck = widget.NewCheck("Categorize", nil)
	a.translateCheck = widget.NewCheck("Translate", nil)
	a.chineseCheck = widget.NewCheck("Simplified Chinese column", nil)

	a.chaptersEntry = NewNumericEntry()
	a.categorizeBatchEntry = NewNumericEntry()
	a.translateBatchEntry = NewNumericEntry()
	a.hanjaBatchEntry = NewNumericEntry()
	for _, e := range []*NumericEntry{a.chaptersEntry, a.categorizeBatchEntry, a.translateBatchEntry, a.hanjaBatchEntry} {
		e.SetOnEscape(func() { a.window.Canvas().Unfocus() })
	}

	form := widget.NewForm(
		widget.NewFormItem("Chapters folder", a.withBrowse(a.rawsEntry, a.browseRaws)),
		widget.NewFormItem("Reference file", a.withBrowse(a.referenceEntry, a.browseReference)),
		widget.NewFormItem("Output workbook", a.withBrowse(a.outputEntry, a.browseOutput)),
		widget.NewFormItem("Genre", a.genreSelect),
		widget.NewFormItem("Provider", a.providerSelect),
	)

	toggles := container.NewGridWithColumns(3,
		a.localCheck, a.hanjaIDCheck, a.guessHanjaCheck,
		a.categorizeCheck, a.translateCheck, a.chineseCheck,
	)

	sizes := container.NewGridWithColumns(4,
		labeled("Chapters per request", a.chaptersEntry),
		labeled("Categorization batch", a.categorizeBatchEntry),
		labeled("Translation batch", a.translateBatchEntry),
		labeled("Hanja batch", a.hanjaBatchEntry),
	)

	a.credentialLabel = widget.NewLabel("")
	a.credentialLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Tooltips are set after the tooltip layer is created
	a.runButton = ttwidget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), a.onRun)
	a.runButton.Importance = widget.HighImportance
	a.cancelButton = ttwidget.NewButtonWithIcon("Cancel", theme.CancelIcon(), a.onCancel)
	a.cancelButton.Importance = widget.DangerImportance
	a.cancelButton.Disable()
	a.archiveButton = ttwidget.NewButtonWithIcon("", theme.FolderIcon(), a.onArchive)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	toolbar := container.NewHBox(
		a.runButton,
		a.cancelButton,
		widget.NewSeparator(),
		a.archiveButton,
		a.helpButton,
	)

	a.logViewer = NewLogViewer()
	a.statusLabel = widget.NewLabel("Ready")

	settings := container.NewVBox(
		form,
		widget.NewSeparator(),
		toggles,
		sizes,
		widget.NewSeparator(),
		a.credentialLabel,
		toolbar,
	)

	content := container.NewBorder(
		settings,
		a.statusLabel,
		nil, nil,
		a.logViewer,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.runner.Cancel()
		a.cancel()
		a.runner.Wait()
	})

	a.setupKeyboardShortcuts()
}

func labeled(text string, obj fyne.CanvasObject) fyne.CanvasObject {
	return container.NewVBox(widget.NewLabel(text), obj)
}

func (a *Application) withBrowse(entry *widget.Entry, browse func()) fyne.CanvasObject {
	button := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), browse)
	return container.NewBorder(nil, nil, nil, button, entry)
}

func (a *Application) setupTooltips() {
	a.runButton.SetToolTip("Build the glossary (Ctrl+R)")
	a.cancelButton.SetToolTip("Stop the running build (Esc)")
	a.archiveButton.SetToolTip("Move previous outputs into archive/")
	a.helpButton.SetToolTip("Show hotkeys")
}

func (a *Application) setupKeyboardShortcuts() {
	canvas := a.window.Canvas()

	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		if !a.runButton.Disabled() {
			a.onRun()
		}
	})

	canvas.SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape && a.runner.Running() {
			a.onCancel()
		}
	})
}

// Run shows the window and blocks until it is closed
func (a *Application) Run() {
	a.logViewer.StartCapture()
	defer a.logViewer.StopCapture()

	logging.Default().Info("glossarymaker GUI started", "version", internal.Version)
	a.window.ShowAndRun()
}

func (a *Application) loadSettings(s Settings) {
	a.rawsEntry.SetText(s.RawsFolder)
	a.referenceEntry.SetText(s.ReferenceFile)
	a.outputEntry.SetText(s.OutputExcel)
	a.genreSelect.SetSelected(s.Genre)
	a.providerSelect.SetSelected(s.Provider)

	a.localCheck.SetChecked(s.LocalModel)
	a.hanjaIDCheck.SetChecked(s.HanjaIdentification)
	a.guessHanjaCheck.SetChecked(s.GuessHanja)
	a.categorizeCheck.SetChecked(s.DoCategorization)
	a.translateCheck.SetChecked(s.DoTranslation)
	a.chineseCheck.SetChecked(s.SimplifiedChineseConversion)

	a.chaptersEntry.SetText(s.ChaptersAnalyzed)
	a.categorizeBatchEntry.SetText(s.CategorizationBatchSize)
	a.translateBatchEntry.SetText(s.TranslationBatchSize)
	a.hanjaBatchEntry.SetText(s.HanjaGuessingBatchSize)
}

func (a *Application) settings() Settings {
	return Settings{
		RawsFolder:    a.rawsEntry.Text,
		ReferenceFile: a.referenceEntry.Text,
		OutputExcel:   a.outputEntry.Text,
		Genre:         a.genreSelect.Selected,
		Provider:      a.providerSelect.Selected,

		LocalModel:                  a.localCheck.Checked,
		HanjaIdentification:         a.hanjaIDCheck.Checked,
		GuessHanja:                  a.guessHanjaCheck.Checked,
		DoCategorization:            a.categorizeCheck.Checked,
		DoTranslation:               a.translateCheck.Checked,
		SimplifiedChineseConversion: a.chineseCheck.Checked,

		ChaptersAnalyzed:        a.chaptersEntry.Text,
		CategorizationBatchSize: a.categorizeBatchEntry.Text,
		TranslationBatchSize:    a.translateBatchEntry.Text,
		HanjaGuessingBatchSize:  a.hanjaBatchEntry.Text,
	}
}

// refreshCredential updates the read-only credential line
func (a *Application) refreshCredential() {
	if a.credentialLabel == nil || a.providerSelect == nil || a.localCheck == nil {
		return
	}
	cfg := *a.config
	cfg.Provider = a.providerSelect.Selected
	cfg.LocalModel = a.localCheck.Checked
	a.credentialLabel.SetText(CredentialStatus(&cfg))
}

func (a *Application) onRun() {
	cfg, err := a.settings().Apply(a.config)
	if err != nil {
		a.showError(err)
		return
	}
	if _, err := pipeline.CheckCredential(cfg); err != nil {
		a.showError(fmt.Errorf("%w. Set the key in the environment, .env or %s", err, config.SampleFileName))
		return
	}

	notifier := desktopNotifier{app: a.app}
	out := a.logViewer.Writer(os.Stdout)

	_, err = a.runner.Start(a.ctx, func(ctx context.Context) error {
		summary, err := pipeline.New(cfg, pipeline.Options{Notifier: notifier, Out: out}).Run(ctx)
		a.mu.Lock()
		a.lastSummary = summary
		a.mu.Unlock()
		return err
	})
	if err != nil {
		a.showError(err)
	}
}

func (a *Application) onCancel() {
	if a.runner.Cancel() {
		a.updateStatus("Cancelling...")
	}
}

// onRunStatus is called from the runner goroutine
func (a *Application) onRunStatus(job RunJob) {
	a.mu.Lock()
	summary := a.lastSummary
	a.mu.Unlock()

	fyne.Do(func() {
		running := job.Status == StatusRunning
		a.setRunning(running)

		switch job.Status {
		case StatusRunning:
			a.updateStatus(fmt.Sprintf("Run #%d in progress...", job.ID))
		case StatusCompleted:
			a.updateStatus(completionMessage(job, summary))
		case StatusCancelled:
			a.updateStatus(fmt.Sprintf("Run #%d cancelled", job.ID))
		case StatusFailed:
			a.showError(job.Error)
		}
	})
}

func completionMessage(job RunJob, summary *pipeline.Summary) string {
	elapsed := job.CompletedAt.Sub(job.StartedAt).Round(time.Second)
	if summary == nil || summary.Workbooks == nil {
		return fmt.Sprintf("Run #%d finished in %s without writing a glossary", job.ID, elapsed)
	}
	return fmt.Sprintf("Run #%d finished in %s: %d nouns saved to %s",
		job.ID, elapsed, summary.Nouns, summary.Workbooks.CategorizedPath)
}

func (a *Application) setRunning(running bool) {
	if running {
		a.runButton.Disable()
		a.archiveButton.Disable()
		a.cancelButton.Enable()
		return
	}
	a.runButton.Enable()
	a.archiveButton.Enable()
	a.cancelButton.Disable()
}

func (a *Application) onArchive() {
	cfg, err := a.settings().Apply(a.config)
	if err != nil {
		a.showError(err)
		return
	}

	dir, err := archive.ArchiveOutputs(filepath.Dir(cfg.NounsJSONFile), archive.OutputFiles(cfg))
	switch {
	case errors.Is(err, archive.ErrNothingToArchive):
		dialog.ShowInformation("Archive", "Nothing to archive", a.window)
	case err != nil:
		a.showError(fmt.Errorf("failed to archive outputs: %w", err))
	default:
		a.updateStatus("Outputs archived to " + dir)
	}
}

func (a *Application) onShowHotkeys() {
	text := widget.NewLabel("Ctrl+R  Build the glossary\nEsc     Cancel the running build")
	text.TextStyle = fyne.TextStyle{Monospace: true}
	dialog.ShowCustom("Keyboard Shortcuts", "Close", text, a.window)
}

func (a *Application) browseRaws() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		a.rawsEntry.SetText(dir.Path())
	}, a.window)
}

func (a *Application) browseReference() {
	d := dialog.NewFileOpen(func(file fyne.URIReadCloser, err error) {
		if err != nil || file == nil {
			return
		}
		defer file.Close()
		a.referenceEntry.SetText(file.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".txt"}))
	d.Show()
}

// browseOutput picks the folder and keeps the workbook file name
func (a *Application) browseOutput() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		name := filepath.Base(a.outputEntry.Text)
		if name == "." || name == string(filepath.Separator) || name == "" {
			name = filepath.Base(config.Default().OutputExcel)
		}
		a.outputEntry.SetText(filepath.Join(dir.Path(), name))
	}, a.window)
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
}

// Run launches the desktop app and blocks until its window is closed
func Run(cfg *config.Config) {
	New(cfg).Run()
}
