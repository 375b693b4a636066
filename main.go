package main

import (
	"oss.terrastruct.com/tailor/lib/xmain"
	"oss.terrastruct.com/tailor/tlcli"
)

func main() {
	xmain.Main(tlcli.Run)
}
