package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with jbuild",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "jbuild.yaml schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "pipeline",
		Title:   "Pipeline",
		Summary: "Stages, states, failure handling, and exit codes",
		Content: topicPipeline,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    jbuild init

   This writes jbuild.yaml and, when src/ is empty, src/app/Main.java.

2. Check the toolchain:

    jbuild doctor

3. Compile everything and copy .fxml/.css assets into class/resources:

    jbuild build

4. Build and launch the configured main class, or a single class:

    jbuild run
    jbuild run pkg.ClassName

5. Other commands:

    jbuild doc              generate documentation into doc/
    jbuild test             build, compile tests, run the test runner
    jbuild watch            rebuild whenever src/ changes
    jbuild build --dry-run  print the commands without running them
`

const topicConfig = `Configuration Reference
=======================

jbuild reads jbuild.yaml from the project root, found by walking up from
the working directory. Without one, the defaults below apply. A .env file
next to jbuild.yaml is loaded first; variables already set win.

  name: my-app
  source-root: src                  # default src
  source-pattern: "src/**/*.java"   # default <source-root>/**/*<ext>
  source-extension: .java
  output-dir: class
  doc-dir: doc
  encoding: UTF-8
  main: app.Main                    # entry point for 'jbuild run'
  declarations: [app.model.Kind]    # compiled before everything else
  classpath: [lib/junit.jar]        # appended after output-dir
  module-path: ""                   # explicit runtime library dir

  runtime-library:
    env: PATH_TO_FX                 # checked first
    modules: [javafx.controls, javafx.fxml]
    paths:                          # per-OS default
      linux: /usr/share/openjfx/lib

  resources:
    dir: resources                  # under output-dir
    extensions: [.fxml, .css]

  companion:                        # app.view.Main -> app.controller.MainController
    view-package: view
    controller-package: controller
    suffix: Controller

  tests:
    enabled: false                  # run tests after every build
    root: test
    pattern: "test/**/*.java"
    runner: org.junit.runner.JUnitCore

  tools: {compiler: javac, launcher: java, doc: javadoc}

When runtime-library.modules is set, the library directory must exist or
the run stops with a configuration error before anything is spawned.
`

const topicPipeline = `Pipeline
========

Every command is one pipeline run. Sources are re-resolved each time.

  idle -> resolving -> compiling -> resource-syncing -> running | testing | documenting -> done
                          |
                          +-> compile-failed

resolving       Sources matching source-pattern are collected, declarations
                first, duplicates dropped. A single target pkg.Name maps to
                src/pkg/Name.java and must exist.
compiling       One compiler process. A non-zero exit stops the run: no
                assets are copied and nothing is launched.
resource-syncing
                Every asset under the source root is copied, flat, into
                output-dir/resources. Same-named files: the last one wins.
running         The launcher runs the target or the configured main class.
testing         Test sources are compiled and handed to the test runner.
documenting     The documentation tool runs over the full source set.

Process output is shown after each process exits, stdout then stderr.

Exit codes:
  0   success
  N   a stage process exited with status N
  2   configuration error
  3   a required tool is missing from PATH
  1   anything else
`
