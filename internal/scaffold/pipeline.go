package scaffold

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jakoblorz/stackinit/internal/filesystem"
)

// Template file layout. The gitignore ships un-dotted because npm strips
// dotted ignore files when packing templates.
const (
	EnvExampleFile      = ".env.example"
	EnvFile             = ".env"
	ReadmeFile          = "README.md"
	ManifestFile        = "package.json"
	GitignoreSourceFile = "gitignore"
	GitignoreFile       = ".gitignore"
	WorkflowFile        = ".github/workflows/deploy.yml"
	AppConfigFile       = "app.config.js"
	VitestConfigFile    = "vitest.config.js"
)

// housekeepingPaths are template-repo artifacts that have no place in a
// scaffolded project.
var housekeepingPaths = []string{
	".github/ISSUE_TEMPLATE",
	".github/dependabot.yml",
	".github/PULL_REQUEST_TEMPLATE.md",
}

// FailedOp describes one file operation that failed during the batch step.
type FailedOp struct {
	Path string
	Err  error
}

// Report summarizes the batch write step. Failures are collected, never
// fatal: the pipeline does not abort or roll back on them.
type Report struct {
	Failed []FailedOp
}

// FailedPaths returns the paths of all failed operations, sorted.
func (r *Report) FailedPaths() []string {
	paths := make([]string, 0, len(r.Failed))
	for _, op := range r.Failed {
		paths = append(paths, op.Path)
	}
	sort.Strings(paths)
	return paths
}

// templateInputs holds the raw template files read at pipeline start.
type templateInputs struct {
	envExample   []byte
	readme       []byte
	manifest     []byte
	gitignore    []byte
	workflow     []byte
	appConfig    []byte
	vitestConfig []byte
}

// Pipeline rewrites a freshly cloned template into a project.
type Pipeline struct {
	fs  filesystem.FileSystem
	ctx *Context
}

// NewPipeline creates a pipeline for the given scaffold context.
func NewPipeline(fs filesystem.FileSystem, ctx *Context) *Pipeline {
	return &Pipeline{fs: fs, ctx: ctx}
}

// Run reads the template files, computes every rewrite, and executes the
// batch of writes and deletions. Read or transform failures abort; write
// failures are collected into the report.
func (p *Pipeline) Run() (*Report, error) {
	inputs, err := p.readTemplateFiles()
	if err != nil {
		return nil, err
	}

	secret, err := GenerateSessionSecret()
	if err != nil {
		return nil, err
	}

	manifest, err := RewriteManifest(inputs.manifest, p.ctx.AppName, p.ctx.Typed)
	if err != nil {
		return nil, err
	}

	tasks := []writeTask{
		p.write(EnvFile, ReplaceSessionSecret(inputs.envExample, secret)),
		p.write(ReadmeFile, ReplaceProjectName(inputs.readme, p.ctx.AppName)),
		p.write(ManifestFile, manifest),
		p.write(GitignoreFile, inputs.gitignore),
	}
	for _, path := range housekeepingPaths {
		tasks = append(tasks, p.remove(path))
	}

	if !p.ctx.Typed {
		workflow, err := RewriteWorkflow(inputs.workflow)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks,
			p.write(WorkflowFile, workflow),
			p.write(AppConfigFile, RewriteEntryPoints(inputs.appConfig)),
			p.write(VitestConfigFile, RewriteEntryPoints(inputs.vitestConfig)),
		)
	}

	return runBatch(tasks), nil
}

// readTemplateFiles reads every required template file concurrently.
// Conditional files are skipped entirely for the typed variant.
func (p *Pipeline) readTemplateFiles() (*templateInputs, error) {
	reads := []struct {
		name string
		dest *[]byte
		skip bool
	}{
		{EnvExampleFile, nil, false},
		{ReadmeFile, nil, false},
		{ManifestFile, nil, false},
		{GitignoreSourceFile, nil, false},
		{WorkflowFile, nil, p.ctx.Typed},
		{AppConfigFile, nil, p.ctx.Typed},
		{VitestConfigFile, nil, p.ctx.Typed},
	}

	inputs := &templateInputs{}
	reads[0].dest = &inputs.envExample
	reads[1].dest = &inputs.readme
	reads[2].dest = &inputs.manifest
	reads[3].dest = &inputs.gitignore
	reads[4].dest = &inputs.workflow
	reads[5].dest = &inputs.appConfig
	reads[6].dest = &inputs.vitestConfig

	var wg sync.WaitGroup
	errs := make([]error, len(reads))

	for i, read := range reads {
		if read.skip {
			continue
		}

		wg.Add(1)
		go func(i int, name string, dest *[]byte) {
			defer wg.Done()

			data, err := p.fs.ReadFile(filepath.Join(p.ctx.RootDir, name))
			if err != nil {
				errs[i] = fmt.Errorf("failed to read template file %s: %w", name, err)
				return
			}
			*dest = data
		}(i, read.name, read.dest)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return inputs, nil
}

// writeTask is one independent file operation in the batch.
type writeTask struct {
	path string
	run  func() error
}

func (p *Pipeline) write(name string, data []byte) writeTask {
	path := filepath.Join(p.ctx.RootDir, name)
	return writeTask{
		path: path,
		run: func() error {
			return p.fs.WriteFile(path, data, 0644)
		},
	}
}

func (p *Pipeline) remove(name string) writeTask {
	path := filepath.Join(p.ctx.RootDir, name)
	return writeTask{
		path: path,
		run: func() error {
			// RemoveAll covers files and directories and succeeds on
			// paths already gone, keeping the batch re-runnable.
			return p.fs.RemoveAll(path)
		},
	}
}

// runBatch executes every task concurrently. A failing task never cancels
// its siblings; failures are collected into the report.
func runBatch(tasks []writeTask) *Report {
	var wg sync.WaitGroup
	var mu sync.Mutex
	report := &Report{}

	for _, task := range tasks {
		wg.Add(1)
		go func(task writeTask) {
			defer wg.Done()

			if err := task.run(); err != nil {
				mu.Lock()
				report.Failed = append(report.Failed, FailedOp{Path: task.path, Err: err})
				mu.Unlock()
			}
		}(task)
	}

	wg.Wait()
	return report
}
