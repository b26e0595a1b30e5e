package util

import "github.com/fatih/color"

var Red = color.New(color.FgRed)
var Cyan = color.New(color.FgCyan)
var CyanBold = color.New(color.FgCyan).Add(color.Bold)
var Green = color.New(color.FgGreen)
var GreenBold = color.New(color.FgGreen).Add(color.Bold)
var Magenta = color.New(color.FgMagenta)

// Mask hides all but the first and last character of a secret
func Mask(secret string) string {
	if len(secret) <= 2 {
		return "**"
	}
	return secret[:1] + "******" + secret[len(secret)-1:]
}
