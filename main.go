package main

import "github.com/ccjmqdzj/sensitive-info-scanner/cmd/sensiscan"

func main() { sensiscan.Execute() }
