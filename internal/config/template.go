package config

// DefaultProjectTemplate returns the config.toml written into a new .c2rust
// directory. It is written verbatim and never rewritten by c2rust-init.
func DefaultProjectTemplate() string {
	return `# c2rust project configuration
# Created by 'c2rust-init init'. Edits are preserved; the file is never overwritten.

[global]
# C compiler used to build the original sources
compiler = "gcc"
# Extra flags passed to every compile command
cflags = []

[model]
# Model used by the translation assistant
name = ""
base_url = ""
api_key = ""

# Each feature groups the commands used to clean, test and build one part of
# the project. "dir" is relative to the project root.
[feature.default.clean]
dir = "."
cmd = "make clean"

[feature.default.test]
dir = "."
cmd = "make test"

[feature.default.build]
dir = "."
cmd = "make"
`
}

