//go:build !mobile

// 非移动端构建时的占位文件。
// 绑定入口在 mobile.go 中，仅在 -tags mobile 时编译，
// 此文件让 go build ./... 和 go vet ./... 在桌面端也能覆盖本包。
package mobile

// Dummy 与移动端构建导出同名函数
func Dummy() {}
