package main

import (
	_ "time/tzdata" // embed zone data so tz parameters resolve in slim containers
)

func main() {
	Execute()
}
