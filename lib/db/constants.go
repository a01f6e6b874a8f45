package db

const ChainResource = "chain"
const NodeResource = "node"
const NodeStatusResource = "node status"
const LanguageResource = "language"

const RevisionSupersededError = "revision already superseded"
const ChainMovedError = "chain last pointer moved"
const StatusMovedError = "node status changed concurrently"
const CurrentMovedError = "chain current pointer moved"
