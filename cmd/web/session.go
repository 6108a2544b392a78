package main

const playerIDSessionKey = "playerID"
