// Package deps resolves the external binaries mixsplit shells out to.
package deps
